package service

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/dto"
	"dayflow/internal/model"
	"dayflow/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayrollService interface {
	// UpsertStructure appends a new salary structure. History is never
	// overwritten; the new effective-from must be strictly after the user's
	// latest entry.
	UpsertStructure(ctx context.Context, userID uuid.UUID, req dto.UpsertPayrollRequest) (*model.PayrollEntry, error)
	CurrentFor(ctx context.Context, userID uuid.UUID) (*model.PayrollEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]model.PayrollEntry, error)
}

type payrollService struct {
	repo repository.PayrollRepository
	now  func() time.Time
}

func NewPayrollService(repo repository.PayrollRepository) PayrollService {
	return &payrollService{repo: repo, now: time.Now}
}

func (s *payrollService) UpsertStructure(ctx context.Context, userID uuid.UUID, req dto.UpsertPayrollRequest) (*model.PayrollEntry, error) {
	effective, err := time.ParseInLocation("2006-01-02", req.EffectiveFrom, time.UTC)
	if req.EffectiveFrom == "" || err != nil {
		return nil, &ValidationError{Violations: []string{"Effective date is required."}}
	}

	entry := &model.PayrollEntry{
		UserID:             userID,
		BasicSalary:        req.BasicSalary,
		HRA:                req.HRA,
		TransportAllowance: req.TransportAllowance,
		MedicalAllowance:   req.MedicalAllowance,
		OtherAllowances:    req.OtherAllowances,
		ProvidentFund:      req.ProvidentFund,
		ProfessionalTax:    req.ProfessionalTax,
		IncomeTax:          req.IncomeTax,
		OtherDeductions:    req.OtherDeductions,
		EffectiveFrom:      effective,
	}
	// Derived at write time so every read agrees.
	entry.GrossSalary = entry.Gross()
	entry.NetSalary = entry.GrossSalary.Sub(entry.Deductions())

	// Ordering check and insert share one transaction. Two concurrent
	// submissions can still both pass the check — matching the original
	// semantics; the unique (user, effective_from) index catches exact
	// duplicates.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		latest, err := s.repo.LatestTx(ctx, tx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && !effective.After(latest.EffectiveFrom) {
			return ErrPayrollOrdering
		}
		return s.repo.CreateTx(ctx, tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}
	return entry, nil
}

func (s *payrollService) CurrentFor(ctx context.Context, userID uuid.UUID) (*model.PayrollEntry, error) {
	entry, err := s.repo.CurrentFor(ctx, userID, dateOf(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *payrollService) History(ctx context.Context, userID uuid.UUID) ([]model.PayrollEntry, error) {
	return s.repo.History(ctx, userID)
}
