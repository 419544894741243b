package ledger

import (
	"testing"

	"prosper-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMemberValues_UnitsTimesUnitValue(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	invID := uuid.New()
	l := &HoldingsLedger{
		Shares: []domain.HoldingShare{
			{HoldingShareID: uuid.New(), InvestmentID: invID, MemberID: alice, Units: dec("30")},
			{HoldingShareID: uuid.New(), InvestmentID: invID, MemberID: bob, Units: dec("10")},
		},
		Investments: map[uuid.UUID]domain.Investment{
			invID: {InvestmentID: invID, UnitValue: dec("10"), RecordedAt: day(2025, 1, 10)},
		},
		Reversed: ReversalSet{},
	}

	got := l.MemberValues(day(2025, 2, 1))
	assert.True(t, dec("300").Equal(got[alice]))
	assert.True(t, dec("100").Equal(got[bob]))
}

func TestMemberValues_ExcludesReversedShares(t *testing.T) {
	alice := uuid.New()
	invID := uuid.New()
	reversedShare := uuid.New()
	l := &HoldingsLedger{
		Shares: []domain.HoldingShare{
			{HoldingShareID: reversedShare, InvestmentID: invID, MemberID: alice, Units: dec("30")},
			{HoldingShareID: uuid.New(), InvestmentID: invID, MemberID: alice, Units: dec("5")},
		},
		Investments: map[uuid.UUID]domain.Investment{
			invID: {InvestmentID: invID, UnitValue: dec("10"), RecordedAt: day(2025, 1, 10)},
		},
		Reversed: reversalSetOf(RecordHoldingShare, reversedShare),
	}

	got := l.MemberValues(day(2025, 2, 1))
	assert.True(t, dec("50").Equal(got[alice]))
}

func TestMemberValues_ExcludesInvestmentsAfterAsOf(t *testing.T) {
	alice := uuid.New()
	early := uuid.New()
	late := uuid.New()
	l := &HoldingsLedger{
		Shares: []domain.HoldingShare{
			{HoldingShareID: uuid.New(), InvestmentID: early, MemberID: alice, Units: dec("2")},
			{HoldingShareID: uuid.New(), InvestmentID: late, MemberID: alice, Units: dec("9")},
		},
		Investments: map[uuid.UUID]domain.Investment{
			early: {InvestmentID: early, UnitValue: dec("10"), RecordedAt: day(2025, 1, 10)},
			late:  {InvestmentID: late, UnitValue: dec("10"), RecordedAt: day(2025, 3, 1)},
		},
		Reversed: ReversalSet{},
	}

	got := l.MemberValues(day(2025, 2, 1))
	assert.True(t, dec("20").Equal(got[alice]))
}

func TestSortedMemberIDs_Deterministic(t *testing.T) {
	values := map[uuid.UUID]decimal.Decimal{}
	for i := 0; i < 20; i++ {
		values[uuid.New()] = decimal.NewFromInt(int64(i))
	}
	first := SortedMemberIDs(values)
	second := SortedMemberIDs(values)
	assert.Equal(t, first, second)
	assert.Len(t, first, 20)
}
