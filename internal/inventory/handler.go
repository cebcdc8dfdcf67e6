package inventory

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

// @Summary      List accommodation types
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} inventory.Accommodation
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /accommodations [get]
func (h *Handler) List(c *gin.Context) {
	accommodations, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, accommodations)
}

// @Summary      Get an accommodation type
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Param        type path string true "Accommodation type"
// @Success      200 {object} inventory.Accommodation
// @Failure      404 {object} api.ErrorResponse
// @Router       /accommodations/{type} [get]
func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("type"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Free units of an accommodation type
// @Description  Units not held by confirmed bookings over the half-open range [start, end)
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string true "Accommodation type"
// @Param        start query string true "First night (YYYY-MM-DD)"
// @Param        end   query string true "Checkout day (YYYY-MM-DD)"
// @Success      200 {object} inventory.Availability
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /accommodations/{type}/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	var q AvailabilityQuery
	if !api.BindQuery(c, &q) {
		return
	}

	iv, err := calendar.Parse(q.Start, q.End)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	availability, err := h.service.Availability(c.Request.Context(), c.Param("type"), iv)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

// @Summary      Create an accommodation type
// @Description  Admin-only
// @Tags         admin,accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body inventory.CreateAccommodationRequest true "Accommodation payload"
// @Success      201 {object} inventory.Accommodation
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/accommodations [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAccommodationRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// @Summary      Update the unit count of an accommodation type
// @Description  Admin-only
// @Tags         admin,accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type    path string true "Accommodation type"
// @Param        request body inventory.UpdateQuantityRequest true "Quantity payload"
// @Success      200 {object} inventory.Accommodation
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/accommodations/{type} [put]
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.service.UpdateQuantity(c.Request.Context(), c.Param("type"), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}
