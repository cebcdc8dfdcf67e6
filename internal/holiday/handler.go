package holiday

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alvimrfg/sistema-socio-40graus/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List holidays
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} holiday.Holiday
// @Router       /admin/holidays [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Add a holiday
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body holiday.CreateHolidayRequest true "Holiday"
// @Success      201 {object} holiday.Holiday
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/holidays [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if !api.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      Delete a holiday
// @Tags         admin
// @Security     BearerAuth
// @Param        id path int true "Holiday ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/holidays/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
