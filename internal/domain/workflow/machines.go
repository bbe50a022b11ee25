package workflow

import "github.com/garyjia/billed/internal/domain/entity"

// NewSessionMachine returns the login / register fallback machine in Idle
func NewSessionMachine() StateMachine {
	b := NewBuilder()
	b.Configure(StateIdle).
		Permit(TriggerSubmit, StateAuthenticating)
	b.Configure(StateAuthenticating).
		Permit(TriggerLoginSucceeded, StateAuthenticated).
		Permit(TriggerLoginFailed, StateRegisterFallback)
	b.Configure(StateRegisterFallback).
		Permit(TriggerRegister, StateRegistering)
	b.Configure(StateRegistering).
		Permit(TriggerLoginSucceeded, StateAuthenticated).
		Permit(TriggerLoginFailed, StateFailed).
		Permit(TriggerRegisterFailed, StateFailed)
	return b.Build(StateIdle)
}

// NewBillMachine returns the lifecycle machine positioned at the bill's status
func NewBillMachine(status entity.BillStatus) (StateMachine, error) {
	if _, err := entity.ParseBillStatus(string(status)); err != nil {
		return nil, err
	}
	b := NewBuilder()
	b.Configure(StatePending).
		Permit(TriggerAccept, StateAccepted).
		Permit(TriggerRefuse, StateRefused)
	return b.Build(State(status)), nil
}

// NewGroupMachine returns a collapsed dashboard group machine
func NewGroupMachine() StateMachine {
	b := NewBuilder()
	b.Configure(StateCollapsed).Permit(TriggerToggle, StateExpanded)
	b.Configure(StateExpanded).Permit(TriggerToggle, StateCollapsed)
	return b.Build(StateCollapsed)
}

// NewDetailMachine returns a bill detail machine showing the summary view
func NewDetailMachine() StateMachine {
	b := NewBuilder()
	b.Configure(StateSummary).Permit(TriggerOpen, StateDetailForm)
	b.Configure(StateDetailForm).
		Permit(TriggerClose, StateSummary).
		Permit(TriggerAccept, StateSummary).
		Permit(TriggerRefuse, StateSummary)
	return b.Build(StateSummary)
}
