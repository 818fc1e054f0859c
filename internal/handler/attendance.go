package handler

import (
	"net/http"

	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
)

// Attendance history window shown on the page, in days.
const historyDays = 30

type AttendanceHandler struct{ svc service.AttendanceService }

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	rec, err := h.svc.CheckIn(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Check-in successful at " + rec.CheckIn.Format("03:04 PM"),
		"record":  attendanceToDTO(rec),
	})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	rec, err := h.svc.CheckOut(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Check-out successful at " + rec.CheckOut.Format("03:04 PM"),
		"record":  attendanceToDTO(rec),
	})
}

// Page returns today's record plus the recent history for rendering.
func (h *AttendanceHandler) Page(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	today, err := h.svc.Today(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	history, err := h.svc.History(c.Request.Context(), ident.UserID, historyDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.AttendancePageResponse{History: make([]dto.AttendanceResponse, 0, len(history))}
	if today != nil {
		resp.Today = attendanceToDTO(today)
	}
	for i := range history {
		resp.History = append(resp.History, *attendanceToDTO(&history[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"attendance": resp,
	})
}

func attendanceToDTO(rec *model.AttendanceRecord) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		Date:    rec.AttendanceDate.Format("2006-01-02"),
		Status:  string(rec.Status),
		Remarks: rec.Remarks,
	}
	if rec.CheckIn != nil {
		resp.CheckIn = rec.CheckIn.Format("15:04:05")
	}
	if rec.CheckOut != nil {
		resp.CheckOut = rec.CheckOut.Format("15:04:05")
	}
	return resp
}
