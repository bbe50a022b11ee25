package workflow

// Trigger is an event that can move a machine to another state
type Trigger string

const (
	TriggerSubmit         Trigger = "SUBMIT"
	TriggerLoginSucceeded Trigger = "LOGIN_SUCCEEDED"
	TriggerLoginFailed    Trigger = "LOGIN_FAILED"
	TriggerRegister       Trigger = "REGISTER"
	TriggerRegisterFailed Trigger = "REGISTER_FAILED"
	TriggerAccept         Trigger = "ACCEPT"
	TriggerRefuse         Trigger = "REFUSE"
	TriggerToggle         Trigger = "TOGGLE"
	TriggerOpen           Trigger = "OPEN"
	TriggerClose          Trigger = "CLOSE"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
