package finance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alvimrfg/sistema-socio-40graus/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Payments of a member
// @Description  Newest first, with the total paid
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {object} finance.Statement
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/transactions [get]
func (h *Handler) List(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	st, err := h.service.Statement(c.Request.Context(), memberID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

// @Summary      Record a payment
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Member ID"
// @Param        request body finance.RecordPaymentRequest true "Payment"
// @Success      201 {object} finance.Transaction
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/transactions [post]
func (h *Handler) Record(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.RecordPayment(c.Request.Context(), memberID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}
