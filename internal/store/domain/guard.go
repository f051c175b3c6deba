package domain

import "fmt"

type Action string

const (
	ActionDeposit       Action = "deposit"
	ActionBuy           Action = "buy"
	ActionReset         Action = "reset"
	ActionCreateProduct Action = "create_product"
	ActionUpdateProduct Action = "update_product"
	ActionDeleteProduct Action = "delete_product"
	ActionRead          Action = "read"
)

// Resource is what an action targets. Account actions set AccountID,
// product actions set OwnerID (and ProductID when the product exists).
type Resource struct {
	AccountID string
	ProductID string
	OwnerID   string
}

func AccountResource(accountID string) Resource {
	return Resource{AccountID: accountID}
}

func ProductResource(p Product) Resource {
	return Resource{ProductID: p.ID, OwnerID: p.OwnerID}
}

func requiredRole(action Action) (Role, bool) {
	switch action {
	case ActionDeposit, ActionBuy, ActionReset:
		return RoleBuyer, true
	case ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct:
		return RoleSeller, true
	default:
		return "", false
	}
}

func owns(actor Actor, action Action, resource Resource) bool {
	switch action {
	case ActionDeposit, ActionBuy, ActionReset:
		return resource.AccountID == actor.AccountID
	default:
		return resource.OwnerID == actor.AccountID
	}
}

// Allow reports whether actor may perform action on resource.
func Allow(actor Actor, action Action, resource Resource) bool {
	role, restricted := requiredRole(action)
	if !restricted {
		return action == ActionRead
	}

	return actor.Role == role && owns(actor, action, resource)
}

// Authorize is Allow with the denial turned into the most specific error the action defines.
func Authorize(actor Actor, action Action, resource Resource) error {
	if Allow(actor, action, resource) {
		return nil
	}

	role, restricted := requiredRole(action)
	switch {
	case restricted && actor.Role != role:
		return &RoleViolationError{
			Msg:  fmt.Sprintf("role %s cannot %s", actor.Role, action),
			Role: actor.Role,
		}
	case restricted && role == RoleSeller:
		return &NotOwnerError{
			Msg:       fmt.Sprintf("product %s is not owned by %s", resource.ProductID, actor.AccountID),
			ProductID: resource.ProductID,
			AccountID: actor.AccountID,
		}
	default:
		return &ForbiddenError{
			Msg:    fmt.Sprintf("%s is not allowed here", action),
			Action: action,
		}
	}
}
