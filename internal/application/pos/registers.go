package pos

import (
	"context"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
)

// Registers owns the per-branch register partitions shared by the cart
// and transaction services. Each branch's partition is created lazily on
// first use and its catalog hydrated from the product repository.
type Registers struct {
	store       *branch.PartitionStore[branchState]
	productRepo catalog.ProductRepository
}

// NewRegisters creates the register partition store
func NewRegisters(productRepo catalog.ProductRepository, receiptPrefix string) *Registers {
	return &Registers{
		store:       branch.NewPartitionStore(seedBranchState(receiptPrefix)),
		productRepo: productRepo,
	}
}

// Keys returns the branches with live register state
func (r *Registers) Keys() []branch.Key {
	return r.store.Keys()
}

// partition returns the branch's register partition with a hydrated
// catalog. The repository read happens outside the partition lock; the
// first writer to finish wins and later hydrations are no-ops.
func (r *Registers) partition(ctx context.Context, key branch.Key) (*branch.Partition[branchState], error) {
	p, err := r.store.Get(key)
	if err != nil {
		return nil, err
	}

	loaded := false
	_ = p.Read(func(st *branchState) error {
		loaded = st.catalogLoaded
		return nil
	})
	if loaded {
		return p, nil
	}

	products, err := r.productRepo.FindByBranch(ctx, key)
	if err != nil {
		return nil, err
	}

	err = p.Update(func(st *branchState) error {
		if st.catalogLoaded {
			return nil
		}
		st.catalog = catalog.NewCatalog(products...)
		st.catalogLoaded = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
