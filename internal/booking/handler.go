package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alvimrfg/sistema-socio-40graus/internal/api"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a booking
// @Description  Books one unit of an accommodation type for [start_date, end_date). A confirmed booking debits its nights from the member allowance.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	iv, err := calendar.Parse(req.StartDate, req.EndDate)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	var b *Booking
	if Status(req.Status) == StatusPending {
		b, err = h.service.CreatePendingBooking(ctx, req.MemberID, req.AccommodationType, iv)
	} else {
		b, err = h.service.CreateBooking(ctx, req.MemberID, req.AccommodationType, iv)
	}
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// @Summary      Change the status of a booking
// @Description  Cancelling a confirmed booking releases its nights; confirming a pending one re-checks capacity and allowance. Cancelled is final.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Booking ID"
// @Param        request body booking.SetStatusRequest true "Status payload"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if !api.BindJSON(c, &req) {
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), id, Status(req.Status))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Booking ID"
// @Success      200 {object} booking.BookingWithDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      List bookings
// @Description  Most recent start date first
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.BookingWithDetails
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List bookings of a member
// @Tags         bookings,members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/bookings [get]
func (h *Handler) ListByMember(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	bookings, err := h.service.ListMemberBookings(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Allowance balance of a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {object} allowance.Balance
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	bal, err := h.service.MemberBalance(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bal)
}
