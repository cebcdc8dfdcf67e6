package settings

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

// @Summary      List settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} settings.Setting
// @Router       /admin/settings [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Update a setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key     path string true "Setting key"
// @Param        request body settings.UpdateSettingRequest true "New value"
// @Success      200 {object} settings.Setting
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/settings/{key} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateSettingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	st, err := h.service.Update(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
