package enum

// TransferStatus tracks a stock movement between two warehouses
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusInTransit TransferStatus = "in-transit"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

var transferTransitions = map[TransferStatus][]TransferStatus{
	TransferStatusPending:   {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit: {TransferStatusCompleted, TransferStatusCancelled},
}

func (s TransferStatus) String() string {
	return string(s)
}

func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal move from s
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	for _, allowed := range transferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TransferStatus) IsTerminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusCancelled
}

// ManufactureStatus tracks a production run
type ManufactureStatus string

const (
	ManufactureStatusPending    ManufactureStatus = "pending"
	ManufactureStatusInProgress ManufactureStatus = "in-progress"
	ManufactureStatusCompleted  ManufactureStatus = "completed"
	ManufactureStatusCancelled  ManufactureStatus = "cancelled"
)

var manufactureTransitions = map[ManufactureStatus][]ManufactureStatus{
	ManufactureStatusPending:    {ManufactureStatusInProgress, ManufactureStatusCancelled},
	ManufactureStatusInProgress: {ManufactureStatusCompleted, ManufactureStatusCancelled},
}

func (s ManufactureStatus) String() string {
	return string(s)
}

func (s ManufactureStatus) IsValid() bool {
	switch s {
	case ManufactureStatusPending, ManufactureStatusInProgress, ManufactureStatusCompleted, ManufactureStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal move from s
func (s ManufactureStatus) CanTransitionTo(next ManufactureStatus) bool {
	for _, allowed := range manufactureTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ManufactureStatus) IsTerminal() bool {
	return s == ManufactureStatusCompleted || s == ManufactureStatusCancelled
}

// ReturnStatus tracks the review of a sale return
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

func (s ReturnStatus) String() string {
	return string(s)
}

func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal move from s.
// Only pending returns can be decided.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	return s == ReturnStatusPending && (next == ReturnStatusApproved || next == ReturnStatusRejected)
}

// PurchaseStatus tracks a supplier purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) String() string {
	return string(s)
}

func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal move from s
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	return s == PurchaseStatusPending && (next == PurchaseStatusReceived || next == PurchaseStatusCancelled)
}
