package domain

import "fmt"

type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSeller, RoleBuyer:
		return Role(raw), nil
	default:
		return "", &InvalidArgumentsError{Msg: fmt.Sprintf("unknown role %q", raw)}
	}
}

// Account balance is in cents and is only ever touched by the ledger and the purchase coordinator.
type Account struct {
	ID           string
	Username     string
	Role         Role
	PasswordHash string
	Balance      int64
}

// Actor is an already authenticated caller.
type Actor struct {
	AccountID string
	Role      Role
}

func (a Account) Actor() Actor {
	return Actor{AccountID: a.ID, Role: a.Role}
}
