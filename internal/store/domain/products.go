package domain

import "fmt"

type Product struct {
	ID       string
	OwnerID  string
	Name     string
	Cost     int64
	Quantity int64
}

// ProductUpdate holds the fields to change; nil fields stay as they are.
type ProductUpdate struct {
	Name     *string
	Cost     *int64
	Quantity *int64
}

func ValidateProductName(name string) error {
	if name == "" {
		return &InvalidArgumentsError{Msg: "product name must not be empty"}
	}

	return nil
}

func ValidateCost(cost int64) error {
	if cost <= 0 || cost%smallestCoin != 0 {
		return &InvalidCostError{
			Msg:  fmt.Sprintf("cost %d must be a positive multiple of %d", cost, smallestCoin),
			Cost: cost,
		}
	}

	return nil
}

func ValidateStockQuantity(quantity int64) error {
	if quantity < 0 {
		return &InvalidQuantityError{
			Msg:      fmt.Sprintf("quantity %d must not be negative", quantity),
			Quantity: quantity,
		}
	}

	return nil
}

func ValidatePurchaseQuantity(quantity int64) error {
	if quantity <= 0 {
		return &InvalidQuantityError{
			Msg:      fmt.Sprintf("quantity %d must be positive", quantity),
			Quantity: quantity,
		}
	}

	return nil
}

// Apply returns a copy of p with the update applied, or the first validation error.
func (u ProductUpdate) Apply(p Product) (Product, error) {
	if u.Name != nil {
		if err := ValidateProductName(*u.Name); err != nil {
			return Product{}, err
		}
		p.Name = *u.Name
	}

	if u.Cost != nil {
		if err := ValidateCost(*u.Cost); err != nil {
			return Product{}, err
		}
		p.Cost = *u.Cost
	}

	if u.Quantity != nil {
		if err := ValidateStockQuantity(*u.Quantity); err != nil {
			return Product{}, err
		}
		p.Quantity = *u.Quantity
	}

	return p, nil
}
