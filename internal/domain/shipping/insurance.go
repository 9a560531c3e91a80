package shipping

import "sync"

// InsuranceSelection is the caller-facing state machine for the insurance
// toggle. Shipments are insured by default; turning insurance off is a
// two-step commitment so a stray click cannot silently drop cover.
//
// The quote function itself stays pure; this type only tracks what the
// caller has committed to.
type InsuranceSelection struct {
	mu            sync.Mutex
	insured       bool
	pendingOptOut bool
}

// NewInsuranceSelection returns a selection with insurance on.
func NewInsuranceSelection() *InsuranceSelection {
	return &InsuranceSelection{insured: true}
}

// Insured reports the committed insurance choice.
func (s *InsuranceSelection) Insured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insured
}

// RequestOptOut records the intent to drop insurance. The committed choice
// is unchanged until ConfirmOptOut is called.
func (s *InsuranceSelection) RequestOptOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insured {
		s.pendingOptOut = true
	}
}

// PendingConfirmation reports whether an opt-out awaits confirmation.
func (s *InsuranceSelection) PendingConfirmation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingOptOut
}

// ConfirmOptOut commits the pending opt-out. It is a no-op when no opt-out
// was requested, so a confirmation can never arrive out of order.
func (s *InsuranceSelection) ConfirmOptOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingOptOut {
		s.insured = false
		s.pendingOptOut = false
	}
}

// CancelOptOut abandons a pending opt-out, keeping insurance on.
func (s *InsuranceSelection) CancelOptOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingOptOut = false
}

// OptIn re-enables insurance immediately; adding cover needs no
// confirmation step.
func (s *InsuranceSelection) OptIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insured = true
	s.pendingOptOut = false
}
