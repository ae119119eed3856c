package endofday

import (
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryFixture() []InventoryItem {
	return []InventoryItem{
		{ID: uuid.New(), Name: "Coffee Beans", Unit: "kg", UnitCost: decimal.RequireFromString("12.00"), Quantity: decimal.NewFromInt(50)},
		{ID: uuid.New(), Name: "Milk", Unit: "l", UnitCost: decimal.RequireFromString("1.50"), Quantity: decimal.NewFromInt(10)},
	}
}

func TestStockCheck(t *testing.T) {
	now := time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC)

	t.Run("seeds actual counts from expected", func(t *testing.T) {
		inv := inventoryFixture()
		check, err := NewStockCheck("downtown", inv, now)
		require.NoError(t, err)

		require.Len(t, check.Items, 2)
		for _, item := range check.Items {
			assert.True(t, item.Actual.Equal(item.Expected))
			assert.True(t, item.Difference().IsZero())
		}
		assert.Empty(t, check.Discrepancies())
	})

	t.Run("records counts and prices the variance", func(t *testing.T) {
		inv := inventoryFixture()
		check, err := NewStockCheck("downtown", inv, now)
		require.NoError(t, err)

		// beans counted 47 against 50 expected, milk untouched
		require.NoError(t, check.RecordCount(inv[0].ID, decimal.NewFromInt(47), "spillage behind the grinder", now))

		discrepancies := check.Discrepancies()
		require.Len(t, discrepancies, 1)
		assert.Equal(t, inv[0].ID, discrepancies[0].ItemID)
		assert.Equal(t, "spillage behind the grinder", discrepancies[0].Notes)
		assert.True(t, discrepancies[0].Difference().Equal(decimal.NewFromInt(-3)))
		assert.True(t, check.TotalVariance().Equal(decimal.RequireFromString("-36.00")))
	})

	t.Run("rejects unknown items and negative counts", func(t *testing.T) {
		check, err := NewStockCheck("downtown", inventoryFixture(), now)
		require.NoError(t, err)

		assert.ErrorIs(t, check.RecordCount(uuid.New(), decimal.NewFromInt(1), "", now), shared.ErrItemNotFound)
		assert.ErrorIs(t, check.RecordCount(check.Items[0].ItemID, decimal.NewFromInt(-1), "", now), shared.ErrInvalidQuantity)
	})

	t.Run("completed check is frozen", func(t *testing.T) {
		check, err := NewStockCheck("downtown", inventoryFixture(), now)
		require.NoError(t, err)

		require.NoError(t, check.Complete(now.Add(10*time.Minute)))
		assert.True(t, check.IsComplete())
		assert.ErrorIs(t, check.RecordCount(check.Items[0].ItemID, decimal.NewFromInt(1), "", now), shared.ErrInvalidState)
		assert.ErrorIs(t, check.Complete(now.Add(20*time.Minute)), shared.ErrInvalidState)
	})
}

func TestDenominationBreakdown(t *testing.T) {
	t.Run("values bills and coins", func(t *testing.T) {
		b := DenominationBreakdown{
			Hundreds: 2, Fifties: 1, Twenties: 3, Tens: 2, Fives: 1, Ones: 4,
			Quarters: 3, Dimes: 2, Nickels: 1, Pennies: 4,
		}
		// 200+50+60+20+5+4 = 339 bills, 0.75+0.20+0.05+0.04 = 1.04 coins
		assert.True(t, b.Total().Equal(decimal.RequireFromString("340.04")))
	})

	t.Run("empty drawer is zero", func(t *testing.T) {
		assert.True(t, DenominationBreakdown{}.Total().IsZero())
	})
}

func TestCashReconciliation(t *testing.T) {
	now := time.Date(2026, 3, 15, 22, 30, 0, 0, time.UTC)
	tolerance := decimal.RequireFromString("0.50")

	t.Run("discrepancy is counted minus expected", func(t *testing.T) {
		petty := []PettyCashEntry{
			mustPetty(t, PettyCashOut, "25.50", "window cleaner", now),
		}
		// expected: 200.00 + 315.40 - 25.50 = 489.90
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.RequireFromString("315.40"), petty, tolerance, now)
		require.NoError(t, err)
		assert.Equal(t, ReconciliationPending, rec.Status)
		assert.True(t, rec.Expected.Equal(decimal.RequireFromString("489.90")))

		breakdown := DenominationBreakdown{Hundreds: 4, Twenties: 4, Fives: 1, Ones: 4} // 489.00
		require.NoError(t, rec.RecordCount(breakdown, now))

		assert.True(t, rec.Counted.Equal(decimal.RequireFromString("489.00")))
		assert.True(t, rec.Discrepancy.Equal(decimal.RequireFromString("-0.90")))
		assert.False(t, rec.IsBalanced())
	})

	t.Run("finalize freezes the record with a status", func(t *testing.T) {
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 2, Quarters: 1}, now)) // 200.25

		require.NoError(t, rec.Finalize("drawer short a quarter roll", now.Add(time.Minute)))
		assert.Equal(t, ReconciliationVerified, rec.Status)
		assert.Equal(t, "drawer short a quarter roll", rec.Notes)
		require.NotNil(t, rec.CompletedAt)

		assert.ErrorIs(t, rec.RecordCount(DenominationBreakdown{Hundreds: 2}, now), shared.ErrInvalidState)
		assert.ErrorIs(t, rec.Finalize("", now), shared.ErrInvalidState)
	})

	t.Run("out of tolerance finalizes as discrepancy", func(t *testing.T) {
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 1, Fifties: 1}, now)) // 150.00

		require.NoError(t, rec.Finalize("", now))
		assert.Equal(t, ReconciliationDiscrepancy, rec.Status)
		assert.True(t, rec.IsFinalized())
	})

	t.Run("within tolerance is balanced", func(t *testing.T) {
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 2, Quarters: 1}, now)) // 200.25

		assert.True(t, rec.Discrepancy.Equal(decimal.RequireFromString("0.25")))
		assert.True(t, rec.IsBalanced())
	})

	t.Run("petty cash in raises the expectation", func(t *testing.T) {
		petty := []PettyCashEntry{
			mustPetty(t, PettyCashIn, "10.00", "change from bank", now),
			mustPetty(t, PettyCashOut, "4.00", "stamps", now),
		}
		expected := ExpectedCash(decimal.RequireFromString("100.00"), decimal.RequireFromString("50.00"), petty)
		assert.True(t, expected.Equal(decimal.RequireFromString("156.00")))
	})

	t.Run("petty cash entries validate direction and amount", func(t *testing.T) {
		_, err := NewPettyCashEntry("sideways", decimal.NewFromInt(5), "", "", now)
		assert.Error(t, err)
		_, err = NewPettyCashEntry(PettyCashIn, decimal.Zero, "", "", now)
		assert.Error(t, err)
	})
}

func TestReport(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	tolerance := decimal.RequireFromString("0.50")

	completeStock := func(t *testing.T) *StockCheck {
		t.Helper()
		check, err := NewStockCheck("downtown", inventoryFixture(), now)
		require.NoError(t, err)
		require.NoError(t, check.Complete(now))
		return check
	}

	balancedCash := func(t *testing.T) *CashReconciliation {
		t.Helper()
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 2}, now))
		require.NoError(t, rec.Finalize("", now))
		return rec
	}

	t.Run("clean day does not require attention", func(t *testing.T) {
		report, err := NewReport("downtown", now, SalesSummary{}, completeStock(t), balancedCash(t), now)
		require.NoError(t, err)

		assert.False(t, report.RequiresAttention)
		assert.True(t, report.CashBalanced)
		assert.Empty(t, report.StockDiscrepancies)
	})

	t.Run("stock discrepancy flags the report", func(t *testing.T) {
		check, err := NewStockCheck("downtown", inventoryFixture(), now)
		require.NoError(t, err)
		require.NoError(t, check.RecordCount(check.Items[0].ItemID, decimal.NewFromInt(47), "", now))
		require.NoError(t, check.Complete(now))

		report, err := NewReport("downtown", now, SalesSummary{}, check, balancedCash(t), now)
		require.NoError(t, err)
		assert.True(t, report.RequiresAttention)
	})

	t.Run("cash discrepancy flags the report", func(t *testing.T) {
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 1, Fifties: 1}, now)) // 150 against 200 expected
		require.NoError(t, rec.Finalize("", now))

		report, err := NewReport("downtown", now, SalesSummary{}, completeStock(t), rec, now)
		require.NoError(t, err)
		assert.True(t, report.RequiresAttention)
		assert.False(t, report.CashBalanced)
	})

	t.Run("unfinalized cash reconciliation blocks the report", func(t *testing.T) {
		rec, err := BeginCashReconciliation("downtown", decimal.RequireFromString("200.00"), decimal.Zero, nil, tolerance, now)
		require.NoError(t, err)
		require.NoError(t, rec.RecordCount(DenominationBreakdown{Hundreds: 2}, now))

		_, err = NewReport("downtown", now, SalesSummary{}, completeStock(t), rec, now)
		assert.ErrorIs(t, err, shared.ErrReconciliationRequired)
	})

	t.Run("incomplete stock check blocks the report", func(t *testing.T) {
		check, err := NewStockCheck("downtown", inventoryFixture(), now)
		require.NoError(t, err)

		_, err = NewReport("downtown", now, SalesSummary{}, check, balancedCash(t), now)
		assert.ErrorIs(t, err, shared.ErrReconciliationRequired)
	})

	t.Run("missing cash reconciliation blocks the report", func(t *testing.T) {
		_, err := NewReport("downtown", now, SalesSummary{}, completeStock(t), nil, now)
		assert.ErrorIs(t, err, shared.ErrReconciliationRequired)
	})
}

func mustPetty(t *testing.T, direction PettyCashDirection, amount, reason string, now time.Time) PettyCashEntry {
	t.Helper()
	entry, err := NewPettyCashEntry(direction, decimal.RequireFromString(amount), reason, "Amara", now)
	require.NoError(t, err)
	return entry
}
