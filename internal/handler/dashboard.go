package handler

import (
	"net/http"

	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary picks the employee or admin view from the session role.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	var (
		resp *dto.DashboardResponse
		err  error
	)
	switch ident.Role {
	case model.RoleHR, model.RoleAdmin:
		resp, err = h.svc.AdminSummary(c.Request.Context())
	default:
		resp, err = h.svc.EmployeeSummary(c.Request.Context(), ident.UserID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"role":       string(ident.Role),
		"dashboard":  resp,
	})
}
