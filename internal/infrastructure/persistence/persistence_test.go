package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	cfg := &config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestGormBranchRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormBranchRepository(db.DB)
	ctx := context.Background()

	t.Run("round trips a branch by key", func(t *testing.T) {
		b, err := branch.NewBranch("downtown", "Judy's Cafe Downtown", "412 Main St", "555-0142", "", "Judy Tran", "6:30-18:00")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, b))

		found, err := repo.FindByKey(ctx, "downtown")
		require.NoError(t, err)
		assert.Equal(t, b.ID, found.ID)
		assert.Equal(t, "Judy's Cafe Downtown", found.Name)
		assert.Equal(t, branch.Key("downtown"), found.Key)
	})

	t.Run("returns ErrNotFound for unknown key", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, "harbor")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists branches ordered by key", func(t *testing.T) {
		b, err := branch.NewBranch("airport", "Judy's Cafe Airport", "Terminal B", "555-0178", "", "Marcus Webb", "5:00-22:00")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, b))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, branch.Key("airport"), all[0].Key)
		assert.Equal(t, branch.Key("downtown"), all[1].Key)
	})
}

func TestGormProductRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()
	key := branch.Key("downtown")

	latte, err := catalog.NewProduct("Latte", catalog.CategoryCoffee, mustDecimal(t, "4.50"), "", 3)
	require.NoError(t, err)
	croissant, err := catalog.NewProduct("Butter Croissant", catalog.CategoryPastry, mustDecimal(t, "3.25"), "", 1)
	require.NoError(t, err)

	t.Run("keeps menu order across saves", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, key, latte))
		require.NoError(t, repo.Save(ctx, key, croissant))

		products, err := repo.FindByBranch(ctx, key)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Latte", products[0].Name)
		assert.Equal(t, "Butter Croissant", products[1].Name)
	})

	t.Run("updating a product keeps its position", func(t *testing.T) {
		latte.Price = mustDecimal(t, "4.75")
		require.NoError(t, repo.Save(ctx, key, latte))

		products, err := repo.FindByBranch(ctx, key)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Latte", products[0].Name)
		assert.True(t, products[0].Price.Equal(mustDecimal(t, "4.75")))
	})

	t.Run("scopes catalog to the branch", func(t *testing.T) {
		products, err := repo.FindByBranch(ctx, "airport")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormTransactionArchive(t *testing.T) {
	db := newTestDatabase(t)
	archive := NewGormTransactionArchive(db.DB)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	newCommitted := func(t *testing.T, receipt string) *sales.Transaction {
		t.Helper()
		latte, err := catalog.NewProduct("Latte", catalog.CategoryCoffee, mustDecimal(t, "4.50"), "", 3)
		require.NoError(t, err)
		cart := catalog.NewCart()
		require.NoError(t, cart.AddItem(latte, 2))

		tx, err := sales.NewTransaction("downtown", receipt, cart, mustDecimal(t, "0.08"), uuid.New(), "Chloe Nguyen", now)
		require.NoError(t, err)
		return tx
	}

	t.Run("round trips a committed transaction", func(t *testing.T) {
		tx := newCommitted(t, "JC260315000001")
		require.NoError(t, archive.Append(ctx, tx))

		found, err := archive.FindByReceiptNumber(ctx, "JC260315000001")
		require.NoError(t, err)
		assert.Equal(t, tx.ID, found.ID)
		assert.Equal(t, branch.Key("downtown"), found.Branch)
		assert.Equal(t, sales.StatusPending, found.Status)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Latte", found.Items[0].Product.Name)
		assert.EqualValues(t, 2, found.Items[0].Quantity)
		assert.True(t, found.Subtotal.Equal(mustDecimal(t, "9.00")))
		assert.True(t, found.Tax.Equal(mustDecimal(t, "0.72")))
		assert.True(t, found.Total.Equal(mustDecimal(t, "9.72")))
	})

	t.Run("updates fulfillment status", func(t *testing.T) {
		tx := newCommitted(t, "JC260315000002")
		require.NoError(t, archive.Append(ctx, tx))

		require.NoError(t, archive.UpdateStatus(ctx, tx.ID, sales.StatusCompleted))

		found, err := archive.FindByReceiptNumber(ctx, "JC260315000002")
		require.NoError(t, err)
		assert.Equal(t, sales.StatusCompleted, found.Status)
	})

	t.Run("status update on unknown id fails", func(t *testing.T) {
		err := archive.UpdateStatus(ctx, uuid.New(), sales.StatusCompleted)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists branch transactions newest first", func(t *testing.T) {
		txs, err := archive.FindByBranch(ctx, "downtown", 1)
		require.NoError(t, err)
		assert.Len(t, txs, 1)

		txs, err = archive.FindByBranch(ctx, "downtown", 0)
		require.NoError(t, err)
		assert.Len(t, txs, 2)

		txs, err = archive.FindByBranch(ctx, "airport", 0)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestGormTimeEntryArchive(t *testing.T) {
	db := newTestDatabase(t)
	employees := NewGormEmployeeRepository(db.DB)
	entries := NewGormTimeEntryArchive(db.DB)
	ctx := context.Background()
	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	amara, err := workforce.NewEmployee("downtown", "Amara Osei", workforce.RoleManager, mustDecimal(t, "24.00"))
	require.NoError(t, err)
	require.NoError(t, employees.Save(ctx, amara))

	t.Run("persists a full shift", func(t *testing.T) {
		entry, err := workforce.NewTimeEntry("downtown", amara, morning)
		require.NoError(t, err)
		require.NoError(t, entries.Append(ctx, entry))

		require.NoError(t, entry.Close(morning.Add(9*time.Hour+30*time.Minute)))
		require.NoError(t, entries.Update(ctx, entry))

		stored, err := entries.FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, workforce.ClockStatusClockedOut, stored[0].Status)
		assert.True(t, stored[0].TotalHours.Equal(mustDecimal(t, "9.5")))
		assert.True(t, stored[0].RegularHours.Equal(mustDecimal(t, "8")))
		assert.True(t, stored[0].OvertimeHours.Equal(mustDecimal(t, "1.5")))
		require.NotNil(t, stored[0].ClockOut)
	})

	t.Run("updating an unknown entry fails", func(t *testing.T) {
		entry, err := workforce.NewTimeEntry("downtown", amara, morning)
		require.NoError(t, err)
		err = entries.Update(ctx, entry)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("active roster excludes deactivated staff", func(t *testing.T) {
		ben, err := workforce.NewEmployee("downtown", "Ben Castillo", workforce.RoleBarista, mustDecimal(t, "16.50"))
		require.NoError(t, err)
		ben.Deactivate()
		require.NoError(t, employees.Save(ctx, ben))

		roster, err := employees.FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, "Amara Osei", roster[0].Name)
	})
}

func TestGormPayrollArchive(t *testing.T) {
	db := newTestDatabase(t)
	archive := NewGormPayrollArchive(db.DB)
	ctx := context.Background()

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	morning := start.Add(8 * time.Hour)

	amara, err := workforce.NewEmployee("downtown", "Amara Osei", workforce.RoleManager, mustDecimal(t, "20.00"))
	require.NoError(t, err)
	entry, err := workforce.NewTimeEntry("downtown", amara, morning)
	require.NoError(t, err)
	require.NoError(t, entry.Close(morning.Add(9*time.Hour+30*time.Minute)))

	period, err := workforce.GeneratePayroll("downtown", []*workforce.Employee{amara}, []*workforce.TimeEntry{entry}, start, end, workforce.DefaultPayrollRates(), end)
	require.NoError(t, err)

	t.Run("round trips frozen payroll lines", func(t *testing.T) {
		require.NoError(t, archive.Append(ctx, period))

		stored, err := archive.FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		require.Len(t, stored[0].Entries, 1)
		assert.Equal(t, "Amara Osei", stored[0].Entries[0].EmployeeName)
		assert.True(t, stored[0].Entries[0].GrossPay.Equal(mustDecimal(t, "205.00")))
		assert.True(t, stored[0].Entries[0].Taxes.Equal(mustDecimal(t, "51.25")))
		assert.True(t, stored[0].Entries[0].NetPay.Equal(mustDecimal(t, "153.75")))
	})
}

func TestGormInventoryStore(t *testing.T) {
	db := newTestDatabase(t)
	store := NewGormInventoryStore(db.DB)
	ctx := context.Background()
	key := branch.Key("downtown")

	beans := endofday.InventoryItem{
		ID:       uuid.New(),
		Name:     "Coffee Beans",
		Unit:     "kg",
		UnitCost: mustDecimal(t, "12.00"),
		Quantity: mustDecimal(t, "50"),
	}
	require.NoError(t, store.SaveItem(ctx, key, beans))

	t.Run("lists branch stock", func(t *testing.T) {
		items, err := store.ListItems(ctx, key)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Coffee Beans", items[0].Name)
		assert.True(t, items[0].Quantity.Equal(mustDecimal(t, "50")))
	})

	t.Run("writes counted stock level", func(t *testing.T) {
		require.NoError(t, store.WriteStockLevel(ctx, key, beans.ID, mustDecimal(t, "47")))

		items, err := store.ListItems(ctx, key)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Quantity.Equal(mustDecimal(t, "47")))
	})

	t.Run("write is scoped to the branch", func(t *testing.T) {
		err := store.WriteStockLevel(ctx, "airport", beans.ID, mustDecimal(t, "10"))
		assert.ErrorIs(t, err, shared.ErrItemNotFound)
	})
}

func TestGormReportArchive(t *testing.T) {
	db := newTestDatabase(t)
	archive := NewGormReportArchive(db.DB)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 21, 0, 0, 0, time.UTC)

	inventory := []endofday.InventoryItem{{
		ID:       uuid.New(),
		Name:     "Coffee Beans",
		Unit:     "kg",
		UnitCost: mustDecimal(t, "12.00"),
		Quantity: mustDecimal(t, "50"),
	}}
	stock, err := endofday.NewStockCheck("downtown", inventory, now)
	require.NoError(t, err)
	require.NoError(t, stock.RecordCount(inventory[0].ID, mustDecimal(t, "47"), "spillage", now))
	require.NoError(t, stock.Complete(now))

	cash, err := endofday.BeginCashReconciliation("downtown", mustDecimal(t, "200.00"), mustDecimal(t, "315.40"), nil,
		mustDecimal(t, "0.50"), now)
	require.NoError(t, err)
	require.NoError(t, cash.RecordCount(endofday.DenominationBreakdown{Hundreds: 4, Twenties: 4, Fives: 1, Quarters: 16}, now))
	require.NoError(t, cash.Finalize("", now))

	summary := endofday.SalesSummary{
		TransactionCount: 42,
		GrossRevenue:     mustDecimal(t, "812.16"),
		TotalTax:         mustDecimal(t, "60.16"),
		TotalTips:        mustDecimal(t, "34.00"),
		ByPaymentMethod: map[catalog.PaymentMethod]decimal.Decimal{
			catalog.PaymentCash: mustDecimal(t, "315.40"),
			catalog.PaymentCard: mustDecimal(t, "496.76"),
		},
	}

	report, err := endofday.NewReport("downtown", now, summary, stock, cash, now)
	require.NoError(t, err)

	t.Run("round trips a close-of-day report", func(t *testing.T) {
		require.NoError(t, archive.Append(ctx, report))

		stored, err := archive.FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, 42, stored[0].Sales.TransactionCount)
		assert.True(t, stored[0].RequiresAttention)
		require.Len(t, stored[0].StockDiscrepancies, 1)
		assert.Equal(t, "Coffee Beans", stored[0].StockDiscrepancies[0].Name)
		assert.Equal(t, "spillage", stored[0].StockDiscrepancies[0].Notes)
		assert.True(t, stored[0].StockDiscrepancies[0].Difference().Equal(mustDecimal(t, "-3")))
		assert.True(t, stored[0].Sales.ByPaymentMethod[catalog.PaymentCash].Equal(mustDecimal(t, "315.40")))
	})
}

func TestGormOperatorRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOperatorRepository(db.DB)
	ctx := context.Background()

	op, err := identity.NewOperator("chloe", "Chloe Nguyen", identity.OperatorRoleCashier, "731046", []branch.Key{"downtown"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, op))

	t.Run("round trips an operator with branch grants", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "chloe")
		require.NoError(t, err)
		assert.Equal(t, op.ID, found.ID)
		assert.Equal(t, identity.OperatorRoleCashier, found.Role)
		require.Len(t, found.Branches, 1)
		assert.Equal(t, branch.Key("downtown"), found.Branches[0])
		assert.True(t, found.VerifyPIN("731046"))
		assert.False(t, found.VerifyPIN("000000"))
	})

	t.Run("unknown username returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSeedDevData(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, SeedDevData(ctx, db))

	t.Run("loads branches, menu and roster", func(t *testing.T) {
		branches, err := NewGormBranchRepository(db.DB).FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, branches, 2)

		products, err := NewGormProductRepository(db.DB).FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		assert.NotEmpty(t, products)

		roster, err := NewGormEmployeeRepository(db.DB).FindByBranch(ctx, "downtown")
		require.NoError(t, err)
		assert.NotEmpty(t, roster)
	})

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, SeedDevData(ctx, db))

		branches, err := NewGormBranchRepository(db.DB).FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, branches, 2)
	})
}
