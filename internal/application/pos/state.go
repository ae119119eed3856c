package pos

import (
	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/sales"
)

// branchState is the per-branch register state living inside a
// partition. Every mutation happens under the partition lock, so one
// branch's cart, receipt counter, and transaction log are serialized
// while other branches proceed concurrently.
type branchState struct {
	catalog       *catalog.Catalog
	catalogLoaded bool
	cart          *catalog.Cart
	receipts      *sales.ReceiptSequence
	transactions  []*sales.Transaction
}

// seedBranchState builds the pure partition seed. The catalog starts
// empty and is hydrated from the product repository on first use.
func seedBranchState(receiptPrefix string) branch.SeedFunc[branchState] {
	return func(branch.Key) *branchState {
		return &branchState{
			catalog:      catalog.NewCatalog(),
			cart:         catalog.NewCart(),
			receipts:     sales.NewReceiptSequence(receiptPrefix),
			transactions: make([]*sales.Transaction, 0),
		}
	}
}
