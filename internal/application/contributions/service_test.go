package contributions

import (
	"context"
	"testing"
	"time"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupContributionsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Member{}, &domain.ContributionWindow{},
		&domain.Contribution{}, &domain.Penalty{},
	))
	return &Service{DB: db}, db
}

func seedMember(t *testing.T, db *gorm.DB) uuid.UUID {
	m := domain.Member{
		FirstName: "Test", LastName: "Member",
		Email:    uuid.New().String() + "@example.com",
		Status:   domain.MemberActive,
		JoinDate: time.Now(),
	}
	require.NoError(t, m.SetRoles([]string{"MEMBER"}))
	require.NoError(t, db.Create(&m).Error)
	return m.MemberID
}

func seedWindow(t *testing.T, db *gorm.DB, min string, max *string) uuid.UUID {
	w := domain.ContributionWindow{
		Name:      "January",
		StartAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		MinAmount: decimal.RequireFromString(min),
	}
	if max != nil {
		d := decimal.RequireFromString(*max)
		w.MaxAmount = &d
	}
	require.NoError(t, db.Create(&w).Error)
	return w.WindowID
}

func strptr(s string) *string { return &s }

func TestCreateWindow_RejectsInvertedDates(t *testing.T) {
	svc, _ := setupContributionsTest(t)

	_, err := svc.CreateWindow(context.Background(), CreateWindowInput{
		Name:    "Backwards",
		StartAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidWindowDates)
}

func TestCreateWindow_RejectsMaxBelowMin(t *testing.T) {
	svc, _ := setupContributionsTest(t)

	max := decimal.RequireFromString("10")
	_, err := svc.CreateWindow(context.Background(), CreateWindowInput{
		Name:      "Bad bounds",
		StartAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		MinAmount: decimal.RequireFromString("50"),
		MaxAmount: &max,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidAmount, apperrors.KindOf(err))
}

func TestListWindows_NewestFirst(t *testing.T) {
	svc, db := setupContributionsTest(t)
	seedWindow(t, db, "0", nil)
	w := domain.ContributionWindow{
		Name:    "February",
		StartAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&w).Error)

	windows, err := svc.ListWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, "February", windows[0].Name)
}

func TestRecordContribution_PersistsRow(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)
	windowID := seedWindow(t, db, "10", strptr("500"))

	c, err := svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: memberID,
		WindowID: windowID,
		Amount:   decimal.RequireFromString("300.50"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ContributionID)

	var stored domain.Contribution
	require.NoError(t, db.First(&stored, "contribution_id = ?", c.ContributionID).Error)
	assert.True(t, decimal.RequireFromString("300.50").Equal(stored.Amount))
}

func TestRecordContribution_EnforcesWindowBounds(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)
	windowID := seedWindow(t, db, "10", strptr("100"))

	_, err := svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: memberID, WindowID: windowID,
		Amount: decimal.RequireFromString("5"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidAmount, apperrors.KindOf(err))

	_, err = svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: memberID, WindowID: windowID,
		Amount: decimal.RequireFromString("150"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidAmount, apperrors.KindOf(err))
}

func TestRecordContribution_RejectsNonPositiveAmount(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)
	windowID := seedWindow(t, db, "0", nil)

	_, err := svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: memberID, WindowID: windowID,
		Amount: decimal.Zero,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidAmount, apperrors.KindOf(err))
}

func TestRecordContribution_UnknownReferences(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)
	windowID := seedWindow(t, db, "0", nil)

	_, err := svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: uuid.New(), WindowID: windowID,
		Amount: decimal.RequireFromString("10"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = svc.RecordContribution(context.Background(), RecordContributionInput{
		MemberID: memberID, WindowID: uuid.New(),
		Amount: decimal.RequireFromString("10"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestRecordPenalty_OptionalWindow(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)

	p, err := svc.RecordPenalty(context.Background(), RecordPenaltyInput{
		MemberID: memberID,
		Amount:   decimal.RequireFromString("25"),
		Reason:   "late payment",
	})
	require.NoError(t, err)
	assert.Nil(t, p.WindowID)
	assert.Equal(t, "late payment", p.Reason)
}

func TestRecordPenalty_UnknownWindow(t *testing.T) {
	svc, db := setupContributionsTest(t)
	memberID := seedMember(t, db)
	missing := uuid.New()

	_, err := svc.RecordPenalty(context.Background(), RecordPenaltyInput{
		MemberID: memberID,
		Amount:   decimal.RequireFromString("25"),
		WindowID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
