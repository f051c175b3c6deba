package domain

//region InvalidArgumentsError

type InvalidArgumentsError struct {
	Msg string
}

func (e *InvalidArgumentsError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentsError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentsError)
	return ok
}

//endregion

//region InvalidDenominationError

type InvalidDenominationError struct {
	Msg  string
	Coin int64
}

func (e *InvalidDenominationError) Error() string {
	return e.Msg
}

func (e *InvalidDenominationError) Is(target error) bool {
	_, ok := target.(*InvalidDenominationError)
	return ok
}

//endregion

//region InvalidCostError

type InvalidCostError struct {
	Msg  string
	Cost int64
}

func (e *InvalidCostError) Error() string {
	return e.Msg
}

func (e *InvalidCostError) Is(target error) bool {
	_, ok := target.(*InvalidCostError)
	return ok
}

//endregion

//region InvalidQuantityError

type InvalidQuantityError struct {
	Msg      string
	Quantity int64
}

func (e *InvalidQuantityError) Error() string {
	return e.Msg
}

func (e *InvalidQuantityError) Is(target error) bool {
	_, ok := target.(*InvalidQuantityError)
	return ok
}

//endregion

//region RoleViolationError

type RoleViolationError struct {
	Msg  string
	Role Role
}

func (e *RoleViolationError) Error() string {
	return e.Msg
}

func (e *RoleViolationError) Is(target error) bool {
	_, ok := target.(*RoleViolationError)
	return ok
}

//endregion

//region NotOwnerError

type NotOwnerError struct {
	Msg       string
	ProductID string
	AccountID string
}

func (e *NotOwnerError) Error() string {
	return e.Msg
}

func (e *NotOwnerError) Is(target error) bool {
	_, ok := target.(*NotOwnerError)
	return ok
}

//endregion

//region ForbiddenError

type ForbiddenError struct {
	Msg    string
	Action Action
}

func (e *ForbiddenError) Error() string {
	return e.Msg
}

func (e *ForbiddenError) Is(target error) bool {
	_, ok := target.(*ForbiddenError)
	return ok
}

//endregion

//region NotFoundError

type NotFoundError struct {
	Msg string
	ID  string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

//endregion

//region AlreadyExistsError

type AlreadyExistsError struct {
	Msg string
	Key string
}

func (e *AlreadyExistsError) Error() string {
	return e.Msg
}

func (e *AlreadyExistsError) Is(target error) bool {
	_, ok := target.(*AlreadyExistsError)
	return ok
}

//endregion

//region InsufficientStockError

type InsufficientStockError struct {
	Msg       string
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return e.Msg
}

func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

//endregion

//region InsufficientFundsError

type InsufficientFundsError struct {
	Msg      string
	Balance  int64
	Required int64
}

func (e *InsufficientFundsError) Error() string {
	return e.Msg
}

func (e *InsufficientFundsError) Is(target error) bool {
	_, ok := target.(*InsufficientFundsError)
	return ok
}

//endregion

//region UnrepresentableAmountError

// UnrepresentableAmountError means a balance invariant was broken somewhere upstream.
type UnrepresentableAmountError struct {
	Msg    string
	Amount int64
}

func (e *UnrepresentableAmountError) Error() string {
	return e.Msg
}

func (e *UnrepresentableAmountError) Is(target error) bool {
	_, ok := target.(*UnrepresentableAmountError)
	return ok
}

//endregion
