// Package models file: models/status.go
package models

// ------------------- registration status -------------------

// RegistrationStatus is the closed set of registration lifecycle states.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationApproved  RegistrationStatus = "APPROVED"
	RegistrationRejected  RegistrationStatus = "REJECTED"
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
)

// legalTransitions lists every permitted status change. CONFIRMED is only
// reachable through payment capture; REJECTED stays re-approvable so an
// admin can reverse a wrong decision. Re-registration resets to PENDING
// through a separate path and is not part of this table.
var legalTransitions = map[RegistrationStatus][]RegistrationStatus{
	RegistrationPending:  {RegistrationApproved, RegistrationRejected},
	RegistrationApproved: {RegistrationConfirmed},
	RegistrationRejected: {RegistrationApproved},
}

// CanTransition reports whether moving from s to next is a legal
// lifecycle change.
func (s RegistrationStatus) CanTransition(next RegistrationStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether the value is one of the known states.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected, RegistrationConfirmed:
		return true
	}
	return false
}

// ---------------------- payment status ----------------------

// PaymentStatus tracks a gateway order: CREATED until the gateway reports
// capture, then PAID.
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "CREATED"
	PaymentPaid    PaymentStatus = "PAID"
)
