package handler

import (
	"net/http"

	"dayflow/internal/apierror"
	"dayflow/internal/config"
	"dayflow/internal/dto"
	"dayflow/internal/infra"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PayrollHandler struct {
	svc      service.PayrollService
	profiles service.ProfileService
	cfg      *config.Config
}

func NewPayrollHandler(svc service.PayrollService, profiles service.ProfileService, cfg *config.Config) *PayrollHandler {
	return &PayrollHandler{svc: svc, profiles: profiles, cfg: cfg}
}

// Current returns the logged-in employee's structure in effect today.
func (h *PayrollHandler) Current(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	entry, err := h.svc.CurrentFor(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := gin.H{"csrf_token": middleware.CSRFToken(c)}
	if entry != nil {
		resp["payroll"] = payrollToDTO(entry)
	}
	c.JSON(http.StatusOK, resp)
}

// Payslip renders the current structure as a PDF download.
func (h *PayrollHandler) Payslip(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	entry, err := h.svc.CurrentFor(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, apierror.New("No payroll structure is in effect yet."))
		return
	}

	user, profile, err := h.profiles.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	path, err := infra.GeneratePayslipPDF(user, profile, entry, h.cfg.PayslipStoragePath)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(path, "payslip.pdf")
}

// History lists all structures for one employee (admin payroll page).
func (h *PayrollHandler) History(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id."))
		return
	}
	entries, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.PayrollResponse, 0, len(entries))
	for i := range entries {
		out = append(out, payrollToDTO(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"entries":    out,
	})
}

// Upsert appends a new salary structure for an employee.
func (h *PayrollHandler) Upsert(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id."))
		return
	}
	var req dto.UpsertPayrollRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entry, err := h.svc.UpsertStructure(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Payroll updated successfully!",
		"payroll": payrollToDTO(entry),
	})
}

func payrollToDTO(e *model.PayrollEntry) dto.PayrollResponse {
	return dto.PayrollResponse{
		ID:                 e.ID.String(),
		BasicSalary:        e.BasicSalary.StringFixed(2),
		HRA:                e.HRA.StringFixed(2),
		TransportAllowance: e.TransportAllowance.StringFixed(2),
		MedicalAllowance:   e.MedicalAllowance.StringFixed(2),
		OtherAllowances:    e.OtherAllowances.StringFixed(2),
		ProvidentFund:      e.ProvidentFund.StringFixed(2),
		ProfessionalTax:    e.ProfessionalTax.StringFixed(2),
		IncomeTax:          e.IncomeTax.StringFixed(2),
		OtherDeductions:    e.OtherDeductions.StringFixed(2),
		GrossSalary:        e.GrossSalary.StringFixed(2),
		NetSalary:          e.NetSalary.StringFixed(2),
		EffectiveFrom:      e.EffectiveFrom.Format("2006-01-02"),
	}
}
