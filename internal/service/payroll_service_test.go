package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"dayflow/internal/dto"
	"dayflow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory payroll repository stub ─────────────────────────────────────────

type stubPayrollRepo struct {
	entries []*model.PayrollEntry
}

func (r *stubPayrollRepo) DB() *gorm.DB { return nil }

func (r *stubPayrollRepo) CreateTx(_ context.Context, _ *gorm.DB, entry *model.PayrollEntry) error {
	entry.ID = uuid.New()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubPayrollRepo) LatestTx(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*model.PayrollEntry, error) {
	var latest *model.PayrollEntry
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if latest == nil || e.EffectiveFrom.After(latest.EffectiveFrom) {
			latest = e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *stubPayrollRepo) CurrentFor(_ context.Context, userID uuid.UUID, asOf time.Time) (*model.PayrollEntry, error) {
	var current *model.PayrollEntry
	for _, e := range r.entries {
		if e.UserID != userID || e.EffectiveFrom.After(asOf) {
			continue
		}
		if current == nil || e.EffectiveFrom.After(current.EffectiveFrom) {
			current = e
		}
	}
	if current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return current, nil
}

func (r *stubPayrollRepo) History(_ context.Context, userID uuid.UUID) ([]model.PayrollEntry, error) {
	var out []model.PayrollEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestPayrollService(repo *stubPayrollRepo) *payrollService {
	return &payrollService{repo: repo, now: fixedClock(testNow)}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func structureReq(effective string) dto.UpsertPayrollRequest {
	return dto.UpsertPayrollRequest{
		BasicSalary:        dec("50000"),
		HRA:                dec("20000"),
		TransportAllowance: dec("3000"),
		MedicalAllowance:   dec("2000"),
		OtherAllowances:    dec("1000"),
		ProvidentFund:      dec("6000"),
		ProfessionalTax:    dec("200"),
		IncomeTax:          dec("8000"),
		OtherDeductions:    dec("500"),
		EffectiveFrom:      effective,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestUpsertStructure_DerivesGrossAndNet(t *testing.T) {
	repo := &stubPayrollRepo{}
	svc := newTestPayrollService(repo)

	entry, err := svc.UpsertStructure(context.Background(), uuid.New(), structureReq("2025-04-01"))
	assert.NoError(t, err)
	assert.True(t, entry.GrossSalary.Equal(dec("76000")), "gross = %s", entry.GrossSalary)
	assert.True(t, entry.NetSalary.Equal(dec("61300")), "net = %s", entry.NetSalary)
}

func TestUpsertStructure_AppendsNeverOverwrites(t *testing.T) {
	repo := &stubPayrollRepo{}
	svc := newTestPayrollService(repo)
	userID := uuid.New()

	_, err := svc.UpsertStructure(context.Background(), userID, structureReq("2025-01-01"))
	assert.NoError(t, err)
	_, err = svc.UpsertStructure(context.Background(), userID, structureReq("2025-04-01"))
	assert.NoError(t, err)

	history, err := svc.History(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, history, 2, "both structures must survive")
}

func TestUpsertStructure_RejectsOlderEffectiveDate(t *testing.T) {
	repo := &stubPayrollRepo{}
	svc := newTestPayrollService(repo)
	userID := uuid.New()

	_, err := svc.UpsertStructure(context.Background(), userID, structureReq("2025-04-01"))
	assert.NoError(t, err)

	_, err = svc.UpsertStructure(context.Background(), userID, structureReq("2025-03-01"))
	assert.ErrorIs(t, err, ErrPayrollOrdering)
	assert.Len(t, repo.entries, 1)
}

func TestUpsertStructure_RejectsEqualEffectiveDate(t *testing.T) {
	repo := &stubPayrollRepo{}
	svc := newTestPayrollService(repo)
	userID := uuid.New()

	_, err := svc.UpsertStructure(context.Background(), userID, structureReq("2025-04-01"))
	assert.NoError(t, err)

	_, err = svc.UpsertStructure(context.Background(), userID, structureReq("2025-04-01"))
	assert.ErrorIs(t, err, ErrPayrollOrdering)
}

func TestUpsertStructure_MissingEffectiveDate(t *testing.T) {
	svc := newTestPayrollService(&stubPayrollRepo{})

	_, err := svc.UpsertStructure(context.Background(), uuid.New(), structureReq(""))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCurrentFor_NoEntries(t *testing.T) {
	svc := newTestPayrollService(&stubPayrollRepo{})

	entry, err := svc.CurrentFor(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestCurrentFor_IgnoresFutureEntries(t *testing.T) {
	repo := &stubPayrollRepo{}
	svc := newTestPayrollService(repo)
	userID := uuid.New()

	// testNow is 2025-03-14: one past and one future structure.
	_, err := svc.UpsertStructure(context.Background(), userID, structureReq("2025-01-01"))
	assert.NoError(t, err)
	_, err = svc.UpsertStructure(context.Background(), userID, structureReq("2025-04-01"))
	assert.NoError(t, err)

	entry, err := svc.CurrentFor(context.Background(), userID)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, "2025-01-01", entry.EffectiveFrom.Format("2006-01-02"))
}
