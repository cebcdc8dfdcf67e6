package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alvimrfg/sistema-socio-40graus/internal/api"
	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Occupancy calendar
// @Description  Confirmed bookings. start and end, when both given, keep the bookings overlapping [start, end).
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start query string false "YYYY-MM-DD"
// @Param        end   query string false "YYYY-MM-DD"
// @Success      200 {array} report.CalendarEvent
// @Failure      400 {object} api.ErrorResponse
// @Router       /reports/calendar [get]
func (h *Handler) Calendar(c *gin.Context) {
	var q CalendarQuery
	if !api.BindQuery(c, &q) {
		return
	}

	var window *calendar.Interval
	switch {
	case q.Start != "" && q.End != "":
		iv, err := calendar.Parse(q.Start, q.End)
		if err != nil {
			api.RespondError(c, err)
			return
		}
		window = &iv
	case q.Start != "" || q.End != "":
		api.RespondError(c, apperror.Validation("start and end must be given together"))
		return
	}

	events, err := h.service.CalendarFeed(c.Request.Context(), window)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary      Dashboard indicators
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} report.Dashboard
// @Router       /reports/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Members per quota type
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} report.QuotaCount
// @Router       /reports/quota-distribution [get]
func (h *Handler) QuotaDistribution(c *gin.Context) {
	counts, err := h.service.QuotaDistribution(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// @Summary      Upcoming check-ins
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} report.Checkin
// @Router       /reports/upcoming-checkins [get]
func (h *Handler) UpcomingCheckins(c *gin.Context) {
	checkins, err := h.service.UpcomingCheckins(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkins)
}
