package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollEntry is an append-only salary structure per (user, effective-from).
// History is never overwritten; the current structure is the entry with the
// latest effective-from <= today.
type PayrollEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_user_effective"`

	// Earnings
	BasicSalary        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	HRA                decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TransportAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	MedicalAllowance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherAllowances    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Deductions
	ProvidentFund   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IncomeTax       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Derived at write time, consistent on every read.
	GrossSalary decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	EffectiveFrom time.Time `gorm:"type:date;not null;uniqueIndex:idx_payroll_user_effective"`
	CreatedAt     time.Time
}

// Gross sums the earnings components.
func (p *PayrollEntry) Gross() decimal.Decimal {
	return p.BasicSalary.
		Add(p.HRA).
		Add(p.TransportAllowance).
		Add(p.MedicalAllowance).
		Add(p.OtherAllowances)
}

// Deductions sums the deduction components.
func (p *PayrollEntry) Deductions() decimal.Decimal {
	return p.ProvidentFund.
		Add(p.ProfessionalTax).
		Add(p.IncomeTax).
		Add(p.OtherDeductions)
}
