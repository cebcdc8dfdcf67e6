package member

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

// @Summary      List usage plans
// @Description  Plan names with the stay-days each grants per membership period.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} member.Plan
// @Failure      401 {object} api.ErrorResponse
// @Router       /plans [get]
func (h *Handler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Plans())
}

// @Summary      List members
// @Description  Ordered by name. search matches the name or the tax id digits.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Name or tax id"
// @Success      200 {array} member.Member
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	members, err := h.service.List(c.Request.Context(), q.Search)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update a member
// @Description  A plan change recomputes allowance_days; used_days is kept.
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Member payload"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Set the payment status of a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Member ID"
// @Param        request body member.UpdatePaymentStatusRequest true "Status payload"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/payment-status [patch]
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "payment status updated"})
}

// @Summary      Delete a member
// @Description  Rejected with 409 when the member owns bookings
// @Tags         members
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /members/{id} [delete]
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

// @Summary      List dependents of a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {array} member.Dependent
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/dependents [get]
func (h *Handler) ListDependents(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	dependents, err := h.service.ListDependents(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dependents)
}

// @Summary      Add a dependent
// @Description  At most 3 dependents per member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Member ID"
// @Param        request body member.AddDependentRequest true "Dependent payload"
// @Success      201 {object} member.Dependent
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/dependents [post]
func (h *Handler) AddDependent(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req AddDependentRequest
	if !api.BindJSON(c, &req) {
		return
	}

	d, err := h.service.AddDependent(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

// @Summary      Remove a dependent
// @Tags         members
// @Security     BearerAuth
// @Param        id          path int true "Member ID"
// @Param        dependentID path int true "Dependent ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/dependents/{dependentID} [delete]
func (h *Handler) RemoveDependent(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	dependentID, ok := api.IntParam(c, "dependentID")
	if !ok {
		return
	}

	if err := h.service.RemoveDependent(c.Request.Context(), id, dependentID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
