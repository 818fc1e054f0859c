package handler

import (
	"net/http"

	"dayflow/internal/apierror"
	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeaveHandler struct{ svc service.LeaveService }

func NewLeaveHandler(svc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{svc: svc}
}

// Submit files a new leave request for the logged-in employee.
func (h *LeaveHandler) Submit(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	var req dto.SubmitLeaveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	lr, err := h.svc.Submit(c.Request.Context(), ident.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Leave request submitted successfully!",
		"request": leaveToDTO(lr),
	})
}

// Mine lists the logged-in employee's own requests, newest first.
func (h *LeaveHandler) Mine(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	reqs, err := h.svc.ListByUser(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"requests":   leaveListToDTO(reqs),
	})
}

// List is the admin view, optionally filtered with ?status=Pending.
func (h *LeaveHandler) List(c *gin.Context) {
	var status *model.LeaveStatus
	if q := c.Query("status"); q != "" {
		s := model.LeaveStatus(q)
		switch s {
		case model.LeavePending, model.LeaveApproved, model.LeaveRejected:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, apierror.New("Unknown status filter."))
			return
		}
	}
	reqs, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"requests":   leaveListToDTO(reqs),
	})
}

// Get returns one request for the admin detail page.
func (h *LeaveHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid leave request id."))
		return
	}
	lr, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"request":    leaveToDTO(lr),
	})
}

// Decide approves or rejects a pending request.
func (h *LeaveHandler) Decide(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid leave request id."))
		return
	}
	var req dto.DecideLeaveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	lr, err := h.svc.Decide(c.Request.Context(), id, req.Action, req.Comments, ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Leave request has been " + string(lr.Status) + " successfully!",
		"request": leaveToDTO(lr),
	})
}

func leaveToDTO(lr *model.LeaveRequest) dto.LeaveResponse {
	resp := dto.LeaveResponse{
		ID:            lr.ID.String(),
		LeaveType:     string(lr.LeaveType),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		TotalDays:     lr.TotalDays,
		Status:        string(lr.Status),
		Reason:        lr.Reason,
		AdminComments: lr.AdminComments,
		AppliedAt:     lr.CreatedAt.Format("2006-01-02 15:04"),
	}
	if lr.DecidedAt != nil {
		resp.DecidedAt = lr.DecidedAt.Format("2006-01-02 15:04")
	}
	return resp
}

func leaveListToDTO(reqs []model.LeaveRequest) []dto.LeaveResponse {
	out := make([]dto.LeaveResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, leaveToDTO(&reqs[i]))
	}
	return out
}
