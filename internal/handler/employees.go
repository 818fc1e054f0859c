package handler

import (
	"net/http"

	"dayflow/internal/apierror"
	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/repository"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeesHandler serves the admin employee directory.
type EmployeesHandler struct {
	svc      service.AuthService
	profiles repository.ProfileRepository
}

func NewEmployeesHandler(svc service.AuthService, profiles repository.ProfileRepository) *EmployeesHandler {
	return &EmployeesHandler{svc: svc, profiles: profiles}
}

func (h *EmployeesHandler) List(c *gin.Context) {
	users, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	profiles, err := h.profiles.ListByUserIDs(c.Request.Context(), ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]dto.EmployeeListItem, 0, len(users))
	for i := range users {
		u := &users[i]
		item := dto.EmployeeListItem{
			ID:           u.ID.String(),
			EmployeeCode: u.EmployeeCode,
			Email:        u.Email,
			Role:         string(u.Role),
			Active:       u.Active,
		}
		if p, ok := profiles[u.ID]; ok {
			item.Name = p.FirstName + " " + p.LastName
			item.Department = p.Department
			item.Designation = p.Designation
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"employees":  items,
	})
}

func (h *EmployeesHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "Employee deactivated.")
}

func (h *EmployeesHandler) Reactivate(c *gin.Context) {
	h.setActive(c, true, "Employee reactivated.")
}

func (h *EmployeesHandler) setActive(c *gin.Context, active bool, msg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id."))
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), id, active); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
