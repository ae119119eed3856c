package persistence

import (
	"context"
	"fmt"

	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/domain/endofday"
	"github.com/branchpos/backend/internal/domain/identity"
	"github.com/branchpos/backend/internal/domain/workforce"
	"github.com/branchpos/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name        string
	category    catalog.Category
	price       string
	description string
	prepMinutes int
}

type seedItem struct {
	name     string
	unit     string
	unitCost string
	quantity string
}

type seedEmployee struct {
	name string
	role workforce.Role
	rate string
}

// SeedDevData loads a working dataset for local development: two
// branches, a cafe menu, tracked stock, a staff roster and login
// operators. It is a no-op when branches already exist.
func SeedDevData(ctx context.Context, db *Database) error {
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.BranchModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	branches := NewGormBranchRepository(db.DB)
	products := NewGormProductRepository(db.DB)
	inventory := NewGormInventoryStore(db.DB)
	employees := NewGormEmployeeRepository(db.DB)
	operators := NewGormOperatorRepository(db.DB)

	downtown := branch.Key("downtown")
	airport := branch.Key("airport")

	seedBranches := []struct {
		key     branch.Key
		name    string
		address string
		phone   string
		manager string
		hours   string
	}{
		{downtown, "Judy's Cafe Downtown", "412 Main St", "555-0142", "Judy Tran", "6:30-18:00"},
		{airport, "Judy's Cafe Airport", "Terminal B, Gate 12", "555-0178", "Marcus Webb", "5:00-22:00"},
	}
	for _, sb := range seedBranches {
		b, err := branch.NewBranch(sb.key, sb.name, sb.address, sb.phone, "", sb.manager, sb.hours)
		if err != nil {
			return fmt.Errorf("seed branch %s: %w", sb.key, err)
		}
		b.ClearDomainEvents()
		if err := branches.Save(ctx, b); err != nil {
			return err
		}
	}

	menu := []seedProduct{
		{"Espresso", catalog.CategoryCoffee, "3.00", "Double shot", 2},
		{"Americano", catalog.CategoryCoffee, "3.50", "Espresso over hot water", 2},
		{"Latte", catalog.CategoryCoffee, "4.50", "Espresso with steamed milk", 3},
		{"Cappuccino", catalog.CategoryCoffee, "4.25", "Equal parts espresso, milk, foam", 3},
		{"Mocha", catalog.CategoryCoffee, "5.00", "Chocolate, espresso, steamed milk", 4},
		{"Hot Chocolate", catalog.CategoryBeverage, "3.75", "", 3},
		{"Iced Tea", catalog.CategoryBeverage, "2.75", "Freshly brewed black tea", 1},
		{"Orange Juice", catalog.CategoryBeverage, "3.25", "", 1},
		{"Butter Croissant", catalog.CategoryPastry, "3.25", "Baked every morning", 1},
		{"Blueberry Muffin", catalog.CategoryPastry, "3.00", "", 1},
		{"Cinnamon Roll", catalog.CategoryPastry, "3.75", "", 2},
		{"Ham & Cheese Sandwich", catalog.CategoryFood, "7.50", "On sourdough", 5},
		{"Avocado Toast", catalog.CategoryFood, "8.25", "Multigrain, chili flakes", 5},
		{"Greek Yogurt Bowl", catalog.CategoryFood, "6.00", "Honey and granola", 2},
	}
	for _, key := range []branch.Key{downtown, airport} {
		for _, sp := range menu {
			p, err := catalog.NewProduct(sp.name, sp.category, decimal.RequireFromString(sp.price), sp.description, sp.prepMinutes)
			if err != nil {
				return fmt.Errorf("seed product %s: %w", sp.name, err)
			}
			if err := products.Save(ctx, key, p); err != nil {
				return err
			}
		}
	}

	stock := []seedItem{
		{"Coffee Beans", "kg", "12.00", "50"},
		{"Whole Milk", "L", "1.20", "80"},
		{"Oat Milk", "L", "2.10", "24"},
		{"Cups (12oz)", "pcs", "0.15", "600"},
		{"Cup Lids", "pcs", "0.05", "600"},
		{"Croissants (frozen)", "pcs", "0.90", "120"},
		{"Sugar", "kg", "2.40", "25"},
	}
	for _, key := range []branch.Key{downtown, airport} {
		for _, si := range stock {
			item := endofday.InventoryItem{
				ID:       uuid.New(),
				Name:     si.name,
				Unit:     si.unit,
				UnitCost: decimal.RequireFromString(si.unitCost),
				Quantity: decimal.RequireFromString(si.quantity),
			}
			if err := inventory.SaveItem(ctx, key, item); err != nil {
				return err
			}
		}
	}

	roster := map[branch.Key][]seedEmployee{
		downtown: {
			{"Amara Osei", workforce.RoleManager, "24.00"},
			{"Ben Castillo", workforce.RoleBarista, "16.50"},
			{"Chloe Nguyen", workforce.RoleCashier, "15.00"},
			{"Derek Holt", workforce.RoleBaker, "18.00"},
		},
		airport: {
			{"Elena Petrova", workforce.RoleManager, "25.00"},
			{"Felix Amadi", workforce.RoleBarista, "17.00"},
			{"Grace Lindqvist", workforce.RoleCashier, "15.50"},
		},
	}
	for key, staff := range roster {
		for _, se := range staff {
			e, err := workforce.NewEmployee(key, se.name, se.role, decimal.RequireFromString(se.rate))
			if err != nil {
				return fmt.Errorf("seed employee %s: %w", se.name, err)
			}
			if err := employees.Save(ctx, e); err != nil {
				return err
			}
		}
	}

	seedOperators := []struct {
		username string
		name     string
		role     identity.OperatorRole
		pin      string
		branches []branch.Key
	}{
		{"judy", "Judy Tran", identity.OperatorRoleAdmin, "190237", nil},
		{"amara", "Amara Osei", identity.OperatorRoleManager, "482915", []branch.Key{downtown}},
		{"chloe", "Chloe Nguyen", identity.OperatorRoleCashier, "731046", []branch.Key{downtown}},
		{"elena", "Elena Petrova", identity.OperatorRoleManager, "605823", []branch.Key{airport}},
	}
	for _, so := range seedOperators {
		op, err := identity.NewOperator(so.username, so.name, so.role, so.pin, so.branches)
		if err != nil {
			return fmt.Errorf("seed operator %s: %w", so.username, err)
		}
		if err := operators.Save(ctx, op); err != nil {
			return err
		}
	}

	return nil
}
