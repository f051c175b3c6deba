package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/google/uuid"
)

type productCell struct {
	mu      sync.Mutex
	product domain.Product
	removed bool
}

// Inventory holds the product catalog. Lock order is account cell, product
// cell, then the inventory lock; the inventory lock is never held while waiting for a cell.
type Inventory struct {
	mu     sync.RWMutex
	cells  map[string]*productCell
	byName map[string]map[string]string

	accounts *AccountBook
	tracker  domain.ChangeTracker
}

func NewInventory(accounts *AccountBook, tracker domain.ChangeTracker) *Inventory {
	if tracker == nil {
		tracker = domain.NoopTracker
	}

	return &Inventory{
		cells:    make(map[string]*productCell),
		byName:   make(map[string]map[string]string),
		accounts: accounts,
		tracker:  tracker,
	}
}

func (inv *Inventory) Load(products []domain.Product) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.cells = make(map[string]*productCell, len(products))
	inv.byName = make(map[string]map[string]string)

	for _, product := range products {
		inv.cells[product.ID] = &productCell{product: product}
		inv.indexName(product.OwnerID, product.Name, product.ID)
	}
}

func (inv *Inventory) Create(actor domain.Actor, name string, cost, quantity int64) (domain.Product, error) {
	err := domain.Authorize(actor, domain.ActionCreateProduct, domain.Resource{OwnerID: actor.AccountID})
	if err != nil {
		return domain.Product{}, err
	}

	if err := domain.ValidateProductName(name); err != nil {
		return domain.Product{}, err
	}
	if err := domain.ValidateCost(cost); err != nil {
		return domain.Product{}, err
	}
	if err := domain.ValidateStockQuantity(quantity); err != nil {
		return domain.Product{}, err
	}

	var product domain.Product

	// The seller stays locked until the product is indexed, so a concurrent
	// account deletion either sees the product or makes this call fail.
	err = inv.accounts.hold(actor.AccountID, func(domain.Account) error {
		inv.mu.Lock()
		defer inv.mu.Unlock()

		if _, taken := inv.byName[actor.AccountID][name]; taken {
			return productNameTaken(name)
		}

		product = domain.Product{
			ID:       uuid.NewString(),
			OwnerID:  actor.AccountID,
			Name:     name,
			Cost:     cost,
			Quantity: quantity,
		}

		inv.cells[product.ID] = &productCell{product: product}
		inv.indexName(product.OwnerID, product.Name, product.ID)
		inv.tracker.ProductChanged(product)

		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

// Update checks existence, then ownership, then the new values. Nothing changes unless all pass.
func (inv *Inventory) Update(actor domain.Actor, productID string, update domain.ProductUpdate) (domain.Product, error) {
	var result domain.Product

	err := inv.withProduct(productID, func(product *domain.Product) error {
		if err := domain.Authorize(actor, domain.ActionUpdateProduct, domain.ProductResource(*product)); err != nil {
			return err
		}

		updated, err := update.Apply(*product)
		if err != nil {
			return err
		}

		if updated.Name != product.Name {
			if err := inv.rename(updated.OwnerID, product.Name, updated.Name, updated.ID); err != nil {
				return err
			}
		}

		*product = updated
		result = updated
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return result, nil
}

// Delete is allowed regardless of remaining stock.
func (inv *Inventory) Delete(actor domain.Actor, productID string) error {
	cell, err := inv.cell(productID)
	if err != nil {
		return err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return productNotFound(productID)
	}

	if err := domain.Authorize(actor, domain.ActionDeleteProduct, domain.ProductResource(cell.product)); err != nil {
		return err
	}

	inv.remove(cell)
	return nil
}

// DeleteByOwner drops every product of a seller and returns how many were removed.
func (inv *Inventory) DeleteByOwner(ownerID string) int {
	inv.mu.RLock()
	owned := make([]*productCell, 0, len(inv.byName[ownerID]))
	for _, productID := range inv.byName[ownerID] {
		owned = append(owned, inv.cells[productID])
	}
	inv.mu.RUnlock()

	removed := 0
	for _, cell := range owned {
		cell.mu.Lock()
		if !cell.removed {
			inv.remove(cell)
			removed++
		}
		cell.mu.Unlock()
	}

	return removed
}

func (inv *Inventory) Get(productID string) (domain.Product, error) {
	cell, err := inv.cell(productID)
	if err != nil {
		return domain.Product{}, err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return domain.Product{}, productNotFound(productID)
	}

	return cell.product, nil
}

func (inv *Inventory) List() []domain.Product {
	inv.mu.RLock()
	cells := make([]*productCell, 0, len(inv.cells))
	for _, cell := range inv.cells {
		cells = append(cells, cell)
	}
	inv.mu.RUnlock()

	products := make([]domain.Product, 0, len(cells))
	for _, cell := range cells {
		cell.mu.Lock()
		if !cell.removed {
			products = append(products, cell.product)
		}
		cell.mu.Unlock()
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})

	return products
}

// ReserveStock takes quantity units out of stock and returns the unit cost at that moment.
func (inv *Inventory) ReserveStock(productID string, quantity int64) (int64, error) {
	var unitCost int64

	err := inv.withProduct(productID, func(product *domain.Product) error {
		var err error
		unitCost, err = reserve(product, quantity)
		return err
	})
	if err != nil {
		return 0, err
	}

	return unitCost, nil
}

// ReleaseStock puts back units taken by ReserveStock.
func (inv *Inventory) ReleaseStock(productID string, quantity int64) error {
	if err := domain.ValidatePurchaseQuantity(quantity); err != nil {
		return err
	}

	return inv.withProduct(productID, func(product *domain.Product) error {
		product.Quantity += quantity
		return nil
	})
}

func reserve(product *domain.Product, quantity int64) (int64, error) {
	if err := domain.ValidatePurchaseQuantity(quantity); err != nil {
		return 0, err
	}

	if product.Quantity < quantity {
		return 0, &domain.InsufficientStockError{
			Msg:       fmt.Sprintf("product %s has %d left, %d requested", product.ID, product.Quantity, quantity),
			ProductID: product.ID,
			Requested: quantity,
			Available: product.Quantity,
		}
	}

	product.Quantity -= quantity
	return product.Cost, nil
}

// withProduct runs fn on a copy of the product under its cell lock.
// The copy is stored and reported to the tracker only when fn succeeds.
func (inv *Inventory) withProduct(productID string, fn func(product *domain.Product) error) error {
	cell, err := inv.cell(productID)
	if err != nil {
		return err
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	if cell.removed {
		return productNotFound(productID)
	}

	updated := cell.product
	if err := fn(&updated); err != nil {
		return err
	}

	cell.product = updated
	inv.tracker.ProductChanged(updated)

	return nil
}

// remove expects the cell lock to be held.
func (inv *Inventory) remove(cell *productCell) {
	cell.removed = true

	inv.mu.Lock()
	delete(inv.cells, cell.product.ID)
	if names := inv.byName[cell.product.OwnerID]; names != nil {
		delete(names, cell.product.Name)
		if len(names) == 0 {
			delete(inv.byName, cell.product.OwnerID)
		}
	}
	inv.mu.Unlock()

	inv.tracker.ProductRemoved(cell.product.ID)
}

func (inv *Inventory) rename(ownerID, oldName, newName, productID string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, taken := inv.byName[ownerID][newName]; taken {
		return productNameTaken(newName)
	}

	delete(inv.byName[ownerID], oldName)
	inv.indexName(ownerID, newName, productID)

	return nil
}

// indexName expects the inventory lock to be held.
func (inv *Inventory) indexName(ownerID, name, productID string) {
	names, found := inv.byName[ownerID]
	if !found {
		names = make(map[string]string)
		inv.byName[ownerID] = names
	}

	names[name] = productID
}

func (inv *Inventory) cell(productID string) (*productCell, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	cell, found := inv.cells[productID]
	if !found {
		return nil, productNotFound(productID)
	}

	return cell, nil
}

func productNotFound(productID string) error {
	return &domain.NotFoundError{
		Msg: fmt.Sprintf("product %s not found", productID),
		ID:  productID,
	}
}

func productNameTaken(name string) error {
	return &domain.AlreadyExistsError{
		Msg: fmt.Sprintf("you already sell a product named %s", name),
		Key: name,
	}
}
