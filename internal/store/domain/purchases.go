package domain

type PurchaseResult struct {
	ProductID string
	Quantity  int64
	Total     int64
	Change    []int64
}

type PurchaseState int

const (
	PurchaseValidating PurchaseState = iota
	PurchaseReserving
	PurchaseSettling
	PurchaseCommitted
	PurchaseAborted
)

func (s PurchaseState) String() string {
	switch s {
	case PurchaseValidating:
		return "validating"
	case PurchaseReserving:
		return "reserving"
	case PurchaseSettling:
		return "settling"
	case PurchaseCommitted:
		return "committed"
	case PurchaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
