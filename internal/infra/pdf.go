package infra

// pdf.go — payslip generation using go-pdf/fpdf.
// Renders an A4 payslip for the salary structure currently in effect:
// employee header, earnings table, deductions table, bold net pay.
// The output file is saved to storagePath/payslip_{employeeCode}_{effective}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"dayflow/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePayslipPDF writes a payslip PDF for the given entry and returns the
// absolute path to the generated file. storagePath is created if needed.
func GeneratePayslipPDF(user *model.User, profile *model.EmployeeProfile, entry *model.PayrollEntry, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("payslip_%s_%s.pdf", user.EmployeeCode, entry.EffectiveFrom.Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Dayflow", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Salary Slip", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Employee info ────────────────────────────────────────────────────────
	name := user.Email
	if profile != nil && (profile.FirstName != "" || profile.LastName != "") {
		name = profile.FirstName + " " + profile.LastName
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, "Employee: "+name, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Code: "+user.EmployeeCode, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if profile != nil && profile.Department != "" {
		pdf.CellFormat(contentW/2, 5, "Department: "+profile.Department, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 5, "Designation: "+profile.Designation, "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Effective from: "+entry.EffectiveFrom.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	line := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.7, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, amount, "", 1, "R", false, 0, "")
	}

	// ── Earnings ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Earnings", "", 1, "L", false, 0, "")
	line("Basic Salary", entry.BasicSalary.StringFixed(2), false)
	line("House Rent Allowance", entry.HRA.StringFixed(2), false)
	line("Transport Allowance", entry.TransportAllowance.StringFixed(2), false)
	line("Medical Allowance", entry.MedicalAllowance.StringFixed(2), false)
	line("Other Allowances", entry.OtherAllowances.StringFixed(2), false)
	line("Gross Salary", entry.GrossSalary.StringFixed(2), true)
	pdf.Ln(2)

	// ── Deductions ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Deductions", "", 1, "L", false, 0, "")
	line("Provident Fund", entry.ProvidentFund.StringFixed(2), false)
	line("Professional Tax", entry.ProfessionalTax.StringFixed(2), false)
	line("Income Tax", entry.IncomeTax.StringFixed(2), false)
	line("Other Deductions", entry.OtherDeductions.StringFixed(2), false)
	pdf.Ln(2)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	line("Net Salary", entry.NetSalary.StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
