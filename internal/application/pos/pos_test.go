package pos

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/sales"
	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	mu       sync.Mutex
	products map[branch.Key][]catalog.Product
	loads    map[branch.Key]int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[branch.Key][]catalog.Product),
		loads:    make(map[branch.Key]int),
	}
}

func (r *stubProductRepo) FindByBranch(_ context.Context, key branch.Key) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads[key]++
	return r.products[key], nil
}

func (r *stubProductRepo) Save(_ context.Context, key branch.Key, p catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[key] = append(r.products[key], p)
	return nil
}

type stubArchive struct {
	mu       sync.Mutex
	appended []*sales.Transaction
	statuses map[uuid.UUID]sales.Status
}

func newStubArchive() *stubArchive {
	return &stubArchive{statuses: make(map[uuid.UUID]sales.Status)}
}

func (a *stubArchive) Append(_ context.Context, tx *sales.Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appended = append(a.appended, tx)
	return nil
}

func (a *stubArchive) UpdateStatus(_ context.Context, id uuid.UUID, status sales.Status) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statuses[id] = status
	return nil
}

type stubEventBus struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (b *stubEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
	return nil
}

func (b *stubEventBus) Subscribe(shared.EventHandler, ...string) {}
func (b *stubEventBus) Unsubscribe(shared.EventHandler)         {}

func (b *stubEventBus) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.events))
	for _, e := range b.events {
		types = append(types, e.EventType())
	}
	return types
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

type posFixture struct {
	repo      *stubProductRepo
	archive   *stubArchive
	bus       *stubEventBus
	scheduler *FulfillmentScheduler
	carts     *CartService
	txs       *TransactionService
	latte     catalog.Product
	croissant catalog.Product
}

func newPOSFixture(t *testing.T, delay time.Duration) *posFixture {
	t.Helper()

	repo := newStubProductRepo()
	latte, err := catalog.NewProduct("Latte", catalog.CategoryCoffee, decimal.RequireFromString("4.50"), "espresso and milk", 5)
	require.NoError(t, err)
	croissant, err := catalog.NewProduct("Croissant", catalog.CategoryPastry, decimal.RequireFromString("3.25"), "", 2)
	require.NoError(t, err)
	for _, key := range []branch.Key{"downtown", "airport"} {
		require.NoError(t, repo.Save(context.Background(), key, latte))
		require.NoError(t, repo.Save(context.Background(), key, croissant))
	}

	registers := NewRegisters(repo, "JC")
	archive := newStubArchive()
	bus := &stubEventBus{}
	scheduler := NewFulfillmentScheduler(delay)
	t.Cleanup(scheduler.Stop)

	clock := fixedClock{t: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	taxRate := decimal.RequireFromString("0.08")

	return &posFixture{
		repo:      repo,
		archive:   archive,
		bus:       bus,
		scheduler: scheduler,
		carts:     NewCartService(registers, taxRate),
		txs:       NewTransactionService(registers, archive, bus, scheduler, clock, taxRate),
		latte:     latte,
		croissant: croissant,
	}
}

func TestCartService(t *testing.T) {
	ctx := context.Background()

	t.Run("add item derives totals", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		cart, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.True(t, cart.Subtotal.Equal(decimal.RequireFromString("9.00")))
		assert.True(t, cart.Tax.Equal(decimal.RequireFromString("0.72")))
		assert.True(t, cart.Total.Equal(decimal.RequireFromString("9.72")))
	})

	t.Run("adding the same product merges lines", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 1)
		require.NoError(t, err)
		cart, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(3), cart.Items[0].Quantity)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		_, err := f.carts.AddItem(ctx, "downtown", uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrItemNotFound)
	})

	t.Run("empty branch key is rejected", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		_, err := f.carts.AddItem(ctx, "", f.latte.ID, 1)
		assert.ErrorIs(t, err, shared.ErrNoActiveBranch)
	})

	t.Run("branches are isolated", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)
		_, err = f.carts.AddItem(ctx, "airport", f.croissant.ID, 1)
		require.NoError(t, err)

		downtown, err := f.carts.GetCart(ctx, "downtown")
		require.NoError(t, err)
		airport, err := f.carts.GetCart(ctx, "airport")
		require.NoError(t, err)

		require.Len(t, downtown.Items, 1)
		require.Len(t, airport.Items, 1)
		assert.Equal(t, "Latte", downtown.Items[0].Name)
		assert.Equal(t, "Croissant", airport.Items[0].Name)
	})

	t.Run("catalog is hydrated once per branch", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		for i := 0; i < 3; i++ {
			_, err := f.carts.ListProducts(ctx, "downtown", catalog.Filter{})
			require.NoError(t, err)
		}
		assert.Equal(t, 1, f.repo.loads["downtown"])
	})

	t.Run("product filter narrows the listing", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		products, err := f.carts.ListProducts(ctx, "downtown", catalog.Filter{Category: catalog.CategoryPastry})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Croissant", products[0].Name)
	})
}

func TestTransactionService(t *testing.T) {
	ctx := context.Background()

	t.Run("commit snapshots the cart and clears it", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)
		cashier := uuid.New()

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)

		tx, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)

		assert.Equal(t, "JC260315000001", tx.ReceiptNumber)
		assert.Equal(t, sales.StatusPending.String(), tx.Status)
		assert.True(t, tx.Total.Equal(decimal.RequireFromString("9.72")))

		cart, err := f.carts.GetCart(ctx, "downtown")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.Tip.IsZero())

		require.Len(t, f.archive.appended, 1)
		assert.Contains(t, f.bus.eventTypes(), sales.EventTypeTransactionCommitted)
	})

	t.Run("commit with empty cart fails", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)

		_, err := f.txs.Commit(ctx, "downtown", uuid.New(), "Amara")
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("receipt numbers increment per branch", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)
		cashier := uuid.New()

		commit := func(key branch.Key) string {
			_, err := f.carts.AddItem(ctx, key, f.latte.ID, 1)
			require.NoError(t, err)
			tx, err := f.txs.Commit(ctx, key, cashier, "Amara")
			require.NoError(t, err)
			return tx.ReceiptNumber
		}

		assert.Equal(t, "JC260315000001", commit("downtown"))
		assert.Equal(t, "JC260315000002", commit("downtown"))
		// a different branch runs its own sequence
		assert.Equal(t, "JC260315000001", commit("airport"))
	})

	t.Run("fulfillment completes the transaction after the delay", func(t *testing.T) {
		f := newPOSFixture(t, 10*time.Millisecond)
		cashier := uuid.New()

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 1)
		require.NoError(t, err)
		tx, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			got, err := f.txs.GetByID(ctx, "downtown", tx.ID)
			return err == nil && got.Status == sales.StatusCompleted.String()
		}, time.Second, 5*time.Millisecond)

		f.archive.mu.Lock()
		status := f.archive.statuses[tx.ID]
		f.archive.mu.Unlock()
		assert.Equal(t, sales.StatusCompleted, status)
		assert.Contains(t, f.bus.eventTypes(), sales.EventTypeTransactionCompleted)
	})

	t.Run("cancel disarms fulfillment", func(t *testing.T) {
		f := newPOSFixture(t, 50*time.Millisecond)
		cashier := uuid.New()

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 1)
		require.NoError(t, err)
		tx, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)

		cancelled, err := f.txs.Cancel(ctx, "downtown", tx.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusCancelled.String(), cancelled.Status)

		time.Sleep(100 * time.Millisecond)
		got, err := f.txs.GetByID(ctx, "downtown", tx.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusCancelled.String(), got.Status)
	})

	t.Run("list recent returns newest first with default limit", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)
		cashier := uuid.New()

		var last string
		for i := 0; i < 12; i++ {
			_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 1)
			require.NoError(t, err)
			tx, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
			require.NoError(t, err)
			last = tx.ReceiptNumber
		}

		recent, err := f.txs.ListRecent(ctx, "downtown", 0)
		require.NoError(t, err)
		require.Len(t, recent, DefaultRecentLimit)
		assert.Equal(t, last, recent[0].ReceiptNumber)
	})

	t.Run("daily summary splits completed revenue by payment method", func(t *testing.T) {
		f := newPOSFixture(t, 5*time.Millisecond)
		cashier := uuid.New()
		day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)
		first, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)

		_, err = f.carts.AddItem(ctx, "downtown", f.croissant.ID, 1)
		require.NoError(t, err)
		_, err = f.carts.UpdateOrderConfig(ctx, "downtown", OrderConfigRequest{
			OrderType:     string(catalog.OrderTypeDineIn),
			PaymentMethod: string(catalog.PaymentCard),
		})
		require.NoError(t, err)
		second, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			assert.Eventually(t, func() bool {
				got, err := f.txs.GetByID(ctx, "downtown", id)
				return err == nil && got.Status == sales.StatusCompleted.String()
			}, time.Second, 5*time.Millisecond)
		}

		summary, err := f.txs.DailySummary(ctx, "downtown", day)
		require.NoError(t, err)

		assert.Equal(t, 2, summary.OrderCount)
		assert.True(t, summary.ByPaymentMethod["cash"].Equal(decimal.RequireFromString("9.72")))
		assert.True(t, summary.ByPaymentMethod["card"].Equal(decimal.RequireFromString("3.51")))
		assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("13.23")))

		cash, err := f.txs.CashSalesFor(ctx, "downtown", day)
		require.NoError(t, err)
		assert.True(t, cash.Equal(decimal.RequireFromString("9.72")))
	})

	t.Run("pending and cancelled sales stay out of the day's figures", func(t *testing.T) {
		f := newPOSFixture(t, time.Hour)
		cashier := uuid.New()
		day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

		_, err := f.carts.AddItem(ctx, "downtown", f.latte.ID, 2)
		require.NoError(t, err)
		tx, err := f.txs.Commit(ctx, "downtown", cashier, "Amara")
		require.NoError(t, err)
		assert.Equal(t, sales.StatusPending.String(), tx.Status)

		// still pending, so nothing has been earned yet
		summary, err := f.txs.DailySummary(ctx, "downtown", day)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.OrderCount)
		assert.True(t, summary.Revenue.IsZero())

		cash, err := f.txs.CashSalesFor(ctx, "downtown", day)
		require.NoError(t, err)
		assert.True(t, cash.IsZero())

		_, err = f.txs.Cancel(ctx, "downtown", tx.ID)
		require.NoError(t, err)

		cash, err = f.txs.CashSalesFor(ctx, "downtown", day)
		require.NoError(t, err)
		assert.True(t, cash.IsZero())
	})
}
