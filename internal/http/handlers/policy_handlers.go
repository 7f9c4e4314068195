package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
)

// PolicyHandlers exposes the authorization rules to administrators
type PolicyHandlers struct {
	policies domain.PolicyService
	resp     *Responder
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService, resp *Responder) *PolicyHandlers {
	return &PolicyHandlers{policies: policies, resp: resp}
}

// PolicyRequest names a single rule
type PolicyRequest struct {
	Sub string `json:"sub" binding:"required"`
	Obj string `json:"obj" binding:"required"`
	Act string `json:"act" binding:"required"`
}

// List returns every rule
func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.policies.GetPolicies()
	h.resp.List(c, "Policies retrieved successfully", policies, len(policies))
}

// Add creates a rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "sub, obj and act are required")
		return
	}
	if err := h.policies.AddPolicy(r.Sub, r.Obj, r.Act); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusCreated, "Policy added", r)
}

// Remove deletes a rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "sub, obj and act are required")
		return
	}
	if err := h.policies.RemovePolicy(r.Sub, r.Obj, r.Act); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusOK, "Policy removed", r)
}
