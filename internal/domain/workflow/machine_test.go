package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/billed/internal/domain/entity"
)

type guardKey struct{}

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateIdle, false},
		{StateAuthenticating, false},
		{StateRegisterFallback, false},
		{StateRegistering, false},
		{StateAuthenticated, true},
		{StateFailed, true},
		{StatePending, false},
		{StateAccepted, true},
		{StateRefused, true},
		{StateCollapsed, false},
		{StateExpanded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"session state", StateIdle, true},
		{"bill state", StateRefused, true},
		{"invalid state", State("INVALID"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder()

	config := builder.Configure(StateIdle)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	if config2 := builder.Configure(StateIdle); config != config2 {
		t.Error("Configure() should return same config for same state")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidState(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid state")
		}
	}()

	NewBuilder().Configure(State("INVALID"))
}

func TestBuilder_BuildPanicsOnInvalidInitialState(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on invalid initial state")
		}
	}()

	NewBuilder().Build(State("INVALID"))
}

func TestBuilder_BuildIsolatesLaterConfiguration(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateCollapsed).Permit(TriggerToggle, StateExpanded)
	machine := builder.Build(StateCollapsed)

	builder.Configure(StateCollapsed).Permit(TriggerOpen, StateDetailForm)

	if machine.CanFire(TriggerOpen) {
		t.Error("machine built earlier should not see later transitions")
	}
}

func TestStateConfiguration_PermitIf(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateAuthenticating).
		PermitIf(TriggerLoginFailed, StateRegisterFallback, func(ctx context.Context) bool {
			return ctx.Value(guardKey{}).(bool)
		}).
		PermitIf(TriggerLoginFailed, StateFailed, func(ctx context.Context) bool {
			return !ctx.Value(guardKey{}).(bool)
		})

	m1 := builder.Build(StateAuthenticating)
	if err := m1.Fire(context.WithValue(context.Background(), guardKey{}, true), TriggerLoginFailed); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if m1.State() != StateRegisterFallback {
		t.Errorf("State after Fire() = %v, want %v", m1.State(), StateRegisterFallback)
	}

	m2 := builder.Build(StateAuthenticating)
	if err := m2.Fire(context.WithValue(context.Background(), guardKey{}, false), TriggerLoginFailed); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if m2.State() != StateFailed {
		t.Errorf("State after Fire() = %v, want %v", m2.State(), StateFailed)
	}
}

func TestStateConfiguration_PermitIf_GuardFails(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StatePending).
		PermitIf(TriggerAccept, StateAccepted, func(ctx context.Context) bool { return false })

	machine := builder.Build(StatePending)

	err := machine.Fire(context.Background(), TriggerAccept)
	if !errors.Is(err, ErrGuardFailed) {
		t.Errorf("Fire() error = %v, want %v", err, ErrGuardFailed)
	}
	if machine.State() != StatePending {
		t.Errorf("State should remain %v after failed Fire(), got %v", StatePending, machine.State())
	}
}

func TestStateMachine_Fire_InvalidTransition(t *testing.T) {
	machine := NewGroupMachine()

	err := machine.Fire(context.Background(), TriggerAccept)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want %v", err, ErrInvalidTransition)
	}
	if machine.State() != StateCollapsed {
		t.Errorf("State should remain %v, got %v", StateCollapsed, machine.State())
	}
}

func TestStateMachine_PermittedTriggers(t *testing.T) {
	machine := NewSessionMachine()
	if err := machine.Fire(context.Background(), TriggerSubmit); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	got := machine.PermittedTriggers()
	want := []Trigger{TriggerLoginFailed, TriggerLoginSucceeded}
	if len(got) != len(want) {
		t.Fatalf("PermittedTriggers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PermittedTriggers()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSessionMachine_Paths(t *testing.T) {
	tests := []struct {
		name     string
		triggers []Trigger
		want     State
	}{
		{"direct login", []Trigger{TriggerSubmit, TriggerLoginSucceeded}, StateAuthenticated},
		{"register then login", []Trigger{TriggerSubmit, TriggerLoginFailed, TriggerRegister, TriggerLoginSucceeded}, StateAuthenticated},
		{"register rejected", []Trigger{TriggerSubmit, TriggerLoginFailed, TriggerRegister, TriggerRegisterFailed}, StateFailed},
		{"retried login rejected", []Trigger{TriggerSubmit, TriggerLoginFailed, TriggerRegister, TriggerLoginFailed}, StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := NewSessionMachine()
			for _, trigger := range tt.triggers {
				if err := machine.Fire(context.Background(), trigger); err != nil {
					t.Fatalf("Fire(%s) failed: %v", trigger, err)
				}
			}
			if machine.State() != tt.want {
				t.Errorf("State() = %v, want %v", machine.State(), tt.want)
			}
			if got := len(machine.History()); got != len(tt.triggers)+1 {
				t.Errorf("History() length = %d, want %d", got, len(tt.triggers)+1)
			}
		})
	}
}

func TestBillMachine(t *testing.T) {
	machine, err := NewBillMachine(entity.BillStatusPending)
	if err != nil {
		t.Fatalf("NewBillMachine() failed: %v", err)
	}
	if err := machine.Fire(context.Background(), TriggerRefuse); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if machine.State() != StateRefused {
		t.Errorf("State() = %v, want %v", machine.State(), StateRefused)
	}

	accepted, err := NewBillMachine(entity.BillStatusAccepted)
	if err != nil {
		t.Fatalf("NewBillMachine() failed: %v", err)
	}
	if err := accepted.Fire(context.Background(), TriggerRefuse); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() on accepted bill error = %v, want %v", err, ErrInvalidTransition)
	}

	if _, err := NewBillMachine(entity.BillStatus("COLLAPSED")); !errors.Is(err, entity.ErrInvalidStatus) {
		t.Errorf("NewBillMachine() error = %v, want %v", err, entity.ErrInvalidStatus)
	}
}

func TestGroupMachine_ToggleTwiceCollapses(t *testing.T) {
	machine := NewGroupMachine()
	for i := 0; i < 2; i++ {
		if err := machine.Fire(context.Background(), TriggerToggle); err != nil {
			t.Fatalf("Fire() failed: %v", err)
		}
	}
	if machine.State() != StateCollapsed {
		t.Errorf("State() = %v, want %v", machine.State(), StateCollapsed)
	}
}

func TestMachineConstructors_InitialStates(t *testing.T) {
	bill, err := NewBillMachine(entity.BillStatusPending)
	if err != nil {
		t.Fatalf("NewBillMachine() failed: %v", err)
	}

	tests := []struct {
		name    string
		machine StateMachine
		want    State
		trigger Trigger
	}{
		{"session", NewSessionMachine(), StateIdle, TriggerSubmit},
		{"bill", bill, StatePending, TriggerAccept},
		{"group", NewGroupMachine(), StateCollapsed, TriggerToggle},
		{"detail", NewDetailMachine(), StateSummary, TriggerOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.machine.State() != tt.want {
				t.Errorf("State() = %v, want %v", tt.machine.State(), tt.want)
			}
			if !tt.machine.CanFire(tt.trigger) {
				t.Errorf("CanFire(%s) = false, want true", tt.trigger)
			}
		})
	}
}

func TestMachineConstructors_IndependentInstances(t *testing.T) {
	first := NewGroupMachine()
	second := NewGroupMachine()
	if err := first.Fire(context.Background(), TriggerToggle); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if second.State() != StateCollapsed {
		t.Errorf("second State() = %v, want %v", second.State(), StateCollapsed)
	}
}
