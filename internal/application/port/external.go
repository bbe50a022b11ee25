package port

// Navigator moves the client between views. It does not know how a
// pathname resolves to a view.
type Navigator interface {
	Navigate(pathname string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(pathname string)

// Navigate calls f(pathname)
func (f NavigatorFunc) Navigate(pathname string) {
	f(pathname)
}

// Alerter shows a blocking message to the user
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter
type AlerterFunc func(message string)

// Alert calls f(message)
func (f AlerterFunc) Alert(message string) {
	f(message)
}

// Viewport holds global visual state reset after a successful login
type Viewport interface {
	ResetBackground()
}
