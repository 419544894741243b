package statement

import (
	"context"
	"testing"
	"time"

	"prosper-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStatementTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Member{}, &domain.Contribution{}, &domain.Penalty{},
		&domain.Investment{}, &domain.HoldingShare{},
		&domain.ExitRequest{}, &domain.BuyOut{}, &domain.Reversal{},
	))
	return &Service{DB: db}, db
}

func seedContribution(t *testing.T, db *gorm.DB, memberID uuid.UUID, amount string, recordedAt time.Time) uuid.UUID {
	c := domain.Contribution{
		MemberID:   memberID,
		WindowID:   uuid.New(),
		Amount:     decimal.RequireFromString(amount),
		RecordedAt: recordedAt,
	}
	require.NoError(t, db.Create(&c).Error)
	return c.ContributionID
}

func datePtr(y int, m time.Month, d int) *time.Time {
	ts := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &ts
}

func TestMemberStatement_RejectsInvertedRange(t *testing.T) {
	svc, _ := setupStatementTest(t)

	_, err := svc.MemberStatement(context.Background(), uuid.New(),
		datePtr(2025, 3, 1), datePtr(2025, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestMemberStatement_ChronologicalContributions(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()
	seedContribution(t, db, alice, "200", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC))
	seedContribution(t, db, alice, "100", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	stmt, err := svc.MemberStatement(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.Len(t, stmt.Contributions, 2)
	assert.True(t, decimal.RequireFromString("100").Equal(stmt.Contributions[0].Amount))
	assert.True(t, decimal.RequireFromString("200").Equal(stmt.Contributions[1].Amount))
}

func TestMemberStatement_DateRangeIsInclusive(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()
	seedContribution(t, db, alice, "1", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	// Late on the to-date's day still counts.
	seedContribution(t, db, alice, "2", time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC))
	seedContribution(t, db, alice, "3", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	stmt, err := svc.MemberStatement(context.Background(), alice,
		datePtr(2025, 2, 1), datePtr(2025, 2, 28))
	require.NoError(t, err)
	require.Len(t, stmt.Contributions, 1)
	assert.True(t, decimal.RequireFromString("2").Equal(stmt.Contributions[0].Amount))
}

func TestMemberStatement_ExcludesReversed(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()
	seedContribution(t, db, alice, "100", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	reversedID := seedContribution(t, db, alice, "900", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&domain.Reversal{
		OriginalRecordType: "contribution",
		OriginalRecordID:   reversedID,
	}).Error)

	stmt, err := svc.MemberStatement(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.Len(t, stmt.Contributions, 1)
}

func TestMemberStatement_InvestmentEntriesBoundByInvestmentDate(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()

	early := domain.Investment{
		RecordedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		UnitValue:  decimal.RequireFromString("10"),
	}
	require.NoError(t, db.Create(&early).Error)
	late := domain.Investment{
		RecordedAt: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		UnitValue:  decimal.RequireFromString("12"),
	}
	require.NoError(t, db.Create(&late).Error)
	for _, invID := range []uuid.UUID{early.InvestmentID, late.InvestmentID} {
		require.NoError(t, db.Create(&domain.HoldingShare{
			InvestmentID: invID,
			MemberID:     alice,
			Units:        decimal.RequireFromString("5"),
		}).Error)
	}

	stmt, err := svc.MemberStatement(context.Background(), alice,
		datePtr(2025, 1, 1), datePtr(2025, 2, 1))
	require.NoError(t, err)
	require.Len(t, stmt.Investments, 1)
	assert.Equal(t, early.InvestmentID, stmt.Investments[0].InvestmentID)
}

func TestMemberStatement_BuyOutsMatchEitherSide(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, db.Create(&domain.BuyOut{
		SellerID:         alice,
		NominalValuation: decimal.RequireFromString("500"),
		ValuationInputs:  []byte(`{}`),
		RecordedAt:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&domain.BuyOut{
		SellerID:         bob,
		BuyerID:          &alice,
		NominalValuation: decimal.RequireFromString("700"),
		ValuationInputs:  []byte(`{}`),
		RecordedAt:       time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&domain.BuyOut{
		SellerID:         bob,
		NominalValuation: decimal.RequireFromString("900"),
		ValuationInputs:  []byte(`{}`),
		RecordedAt:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}).Error)

	stmt, err := svc.MemberStatement(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.Len(t, stmt.BuyOuts, 2)
	assert.True(t, decimal.RequireFromString("500").Equal(stmt.BuyOuts[0].NominalValuation))
	assert.True(t, decimal.RequireFromString("700").Equal(stmt.BuyOuts[1].NominalValuation))
}

func TestMemberStatement_Deterministic(t *testing.T) {
	svc, db := setupStatementTest(t)
	alice := uuid.New()
	ts := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedContribution(t, db, alice, "10", ts)
	}

	first, err := svc.MemberStatement(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	second, err := svc.MemberStatement(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.Len(t, first.Contributions, 5)
	for i := range first.Contributions {
		assert.Equal(t, first.Contributions[i].ContributionID, second.Contributions[i].ContributionID)
	}
}
