package sales

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusQuote           SaleStatus = "QUOTE"
	SaleStatusPendingApproval SaleStatus = "PENDING_APPROVAL"
	SaleStatusApproved        SaleStatus = "APPROVED"
	SaleStatusConfirmed       SaleStatus = "CONFIRMED"
	SaleStatusInProduction    SaleStatus = "IN_PRODUCTION"
	SaleStatusReadyToShip     SaleStatus = "READY_TO_SHIP"
	SaleStatusShipped         SaleStatus = "SHIPPED"
	SaleStatusDelivered       SaleStatus = "DELIVERED"
	SaleStatusCompleted       SaleStatus = "COMPLETED"
	SaleStatusCanceled        SaleStatus = "CANCELED"
	SaleStatusRejected        SaleStatus = "REJECTED"
)

// saleTransitions is the authoritative transition table. A status maps to the
// set of statuses it may move to; terminal statuses map to an empty set.
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusQuote:           {SaleStatusPendingApproval, SaleStatusCanceled},
	SaleStatusPendingApproval: {SaleStatusApproved, SaleStatusRejected, SaleStatusCanceled},
	SaleStatusApproved:        {SaleStatusConfirmed, SaleStatusCanceled},
	SaleStatusConfirmed:       {SaleStatusInProduction, SaleStatusCanceled},
	SaleStatusInProduction:    {SaleStatusReadyToShip, SaleStatusCanceled},
	SaleStatusReadyToShip:     {SaleStatusShipped},
	SaleStatusShipped:         {SaleStatusDelivered},
	SaleStatusDelivered:       {SaleStatusCompleted},
	SaleStatusCompleted:       {},
	SaleStatusCanceled:        {},
	SaleStatusRejected:        {},
}

// AllStatuses returns every valid sale status
func AllStatuses() []SaleStatus {
	return []SaleStatus{
		SaleStatusQuote,
		SaleStatusPendingApproval,
		SaleStatusApproved,
		SaleStatusConfirmed,
		SaleStatusInProduction,
		SaleStatusReadyToShip,
		SaleStatusShipped,
		SaleStatusDelivered,
		SaleStatusCompleted,
		SaleStatusCanceled,
		SaleStatusRejected,
	}
}

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	_, ok := saleTransitions[s]
	return ok
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the transition table for a legal edge
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	for _, t := range saleTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the legal target statuses from this status
func (s SaleStatus) AllowedTargets() []SaleStatus {
	targets := saleTransitions[s]
	out := make([]SaleStatus, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal returns true when no further transitions are allowed
func (s SaleStatus) IsTerminal() bool {
	targets, ok := saleTransitions[s]
	return ok && len(targets) == 0
}

// IsEditable returns true while the sale's fields and items may still change
func (s SaleStatus) IsEditable() bool {
	return s == SaleStatusQuote || s == SaleStatusPendingApproval
}

// HoldsStock reports whether stock has been decremented and not yet delivered.
// Canceling a sale in one of these statuses must return stock to its location.
func (s SaleStatus) HoldsStock() bool {
	switch s {
	case SaleStatusConfirmed, SaleStatusInProduction, SaleStatusReadyToShip, SaleStatusShipped:
		return true
	}
	return false
}

// CreditStatus represents the state of a sale's credit analysis
type CreditStatus string

const (
	CreditStatusPending  CreditStatus = "PENDING"
	CreditStatusApproved CreditStatus = "APPROVED"
	CreditStatusRejected CreditStatus = "REJECTED"
)

// IsValid checks if the status is a valid CreditStatus
func (s CreditStatus) IsValid() bool {
	switch s {
	case CreditStatusPending, CreditStatusApproved, CreditStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of CreditStatus
func (s CreditStatus) String() string {
	return string(s)
}
