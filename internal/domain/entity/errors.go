package entity

import "errors"

var (
	// ErrInvalidStatus is returned when a bill status is not pending, accepted or refused
	ErrInvalidStatus = errors.New("invalid bill status")

	// ErrInvalidRole is returned when a role is neither Employee nor Admin
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnsupportedFileType is returned when a receipt is not a png or jpeg image
	ErrUnsupportedFileType = errors.New("unsupported receipt file type")

	// ErrNoSession is returned when an operation needs a persisted session and none exists
	ErrNoSession = errors.New("no active session")

	// ErrAccountExists is returned when an account email is already taken
	ErrAccountExists = errors.New("email already registered")

	// ErrBillExists is returned when inserting a bill whose id is taken
	ErrBillExists = errors.New("bill already exists")

	// ErrBillNotFound is returned when updating an unknown bill
	ErrBillNotFound = errors.New("bill not found")
)
