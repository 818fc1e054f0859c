package dto

import "github.com/shopspring/decimal"

type UpsertPayrollRequest struct {
	BasicSalary        decimal.Decimal `form:"basic_salary" json:"basic_salary"`
	HRA                decimal.Decimal `form:"hra" json:"hra"`
	TransportAllowance decimal.Decimal `form:"transport_allowance" json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `form:"medical_allowance" json:"medical_allowance"`
	OtherAllowances    decimal.Decimal `form:"other_allowances" json:"other_allowances"`
	ProvidentFund      decimal.Decimal `form:"provident_fund" json:"provident_fund"`
	ProfessionalTax    decimal.Decimal `form:"professional_tax" json:"professional_tax"`
	IncomeTax          decimal.Decimal `form:"income_tax" json:"income_tax"`
	OtherDeductions    decimal.Decimal `form:"other_deductions" json:"other_deductions"`
	EffectiveFrom      string          `form:"effective_from" json:"effective_from"` // YYYY-MM-DD
}

type PayrollResponse struct {
	ID                 string `json:"id"`
	BasicSalary        string `json:"basic_salary"`
	HRA                string `json:"hra"`
	TransportAllowance string `json:"transport_allowance"`
	MedicalAllowance   string `json:"medical_allowance"`
	OtherAllowances    string `json:"other_allowances"`
	ProvidentFund      string `json:"provident_fund"`
	ProfessionalTax    string `json:"professional_tax"`
	IncomeTax          string `json:"income_tax"`
	OtherDeductions    string `json:"other_deductions"`
	GrossSalary        string `json:"gross_salary"`
	NetSalary          string `json:"net_salary"`
	EffectiveFrom      string `json:"effective_from"`
}
