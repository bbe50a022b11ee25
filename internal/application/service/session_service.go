package service

import (
	"context"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/workflow"
	"github.com/garyjia/billed/pkg/utils"
)

// SessionManager authenticates users, registering them when login fails
type SessionManager interface {
	SubmitEmployee(ctx context.Context, form *entity.LoginForm) (*AuthResult, error)
	SubmitAdmin(ctx context.Context, form *entity.LoginForm) (*AuthResult, error)
	Authenticate(ctx context.Context, user *entity.Session, form *entity.LoginForm) (*AuthResult, error)
	Register(ctx context.Context, user *entity.Session, form *entity.LoginForm) (*AuthResult, error)
	Logout(ctx context.Context) error
	PreviousLocation() string
}

// SessionDeps groups the collaborators of a SessionManager.
// Store and Viewport may be nil.
type SessionDeps struct {
	Storage          port.KeyValueStore
	Navigator        port.Navigator
	PreviousLocation string
	Store            port.RemoteStore
	Viewport         port.Viewport
	Logger           Logger
}

// AuthResult describes where an authentication attempt ended
type AuthResult struct {
	State   workflow.State
	Route   string
	Session *entity.Session
}

type sessionManagerImpl struct {
	storage          port.KeyValueStore
	navigator        port.Navigator
	store            port.RemoteStore
	viewport         port.Viewport
	logger           Logger
	previousLocation string
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(deps SessionDeps) SessionManager {
	return &sessionManagerImpl{
		storage:          deps.Storage,
		navigator:        deps.Navigator,
		store:            deps.Store,
		viewport:         deps.Viewport,
		logger:           deps.Logger,
		previousLocation: deps.PreviousLocation,
	}
}

// SubmitEmployee handles the employee login form
func (s *sessionManagerImpl) SubmitEmployee(ctx context.Context, form *entity.LoginForm) (*AuthResult, error) {
	return s.submit(ctx, entity.RoleEmployee, form)
}

// SubmitAdmin handles the admin login form
func (s *sessionManagerImpl) SubmitAdmin(ctx context.Context, form *entity.LoginForm) (*AuthResult, error) {
	return s.submit(ctx, entity.RoleAdmin, form)
}

func (s *sessionManagerImpl) submit(ctx context.Context, role entity.Role, form *entity.LoginForm) (*AuthResult, error) {
	user := &entity.Session{
		Role:     role,
		Email:    form.Email,
		Password: form.Password,
		Status:   entity.SessionStatusConnected,
	}
	if err := saveSession(s.storage, user); err != nil {
		return nil, err
	}

	if s.store == nil {
		return nil, nil
	}

	machine := workflow.NewSessionMachine()
	s.fire(ctx, machine, workflow.TriggerSubmit)

	result, err := s.authenticate(ctx, user, form, machine)
	if err == nil {
		return result, nil
	}
	s.logger.Error("Login failed, trying registration", "email", user.Email, "error", err)

	return s.register(ctx, user, form, machine)
}

// Authenticate logs the user in. Without a remote store it does nothing
// and returns a nil result.
func (s *sessionManagerImpl) Authenticate(ctx context.Context, user *entity.Session, form *entity.LoginForm) (*AuthResult, error) {
	if s.store == nil {
		return nil, nil
	}
	machine := workflow.NewSessionMachine()
	s.fire(ctx, machine, workflow.TriggerSubmit)
	return s.authenticate(ctx, user, form, machine)
}

// Register creates the user then retries the login. Without a remote store
// it does nothing and returns a nil result.
func (s *sessionManagerImpl) Register(ctx context.Context, user *entity.Session, form *entity.LoginForm) (*AuthResult, error) {
	if s.store == nil {
		return nil, nil
	}
	machine := workflow.NewSessionMachine()
	s.fire(ctx, machine, workflow.TriggerSubmit)
	s.fire(ctx, machine, workflow.TriggerLoginFailed)
	return s.register(ctx, user, form, machine)
}

func (s *sessionManagerImpl) authenticate(ctx context.Context, user *entity.Session, form *entity.LoginForm, machine workflow.StateMachine) (*AuthResult, error) {
	res, err := s.store.Login(ctx, entity.Credentials{
		Email:    user.Email,
		Password: user.Password,
	})
	if err != nil {
		s.fire(ctx, machine, workflow.TriggerLoginFailed)
		return &AuthResult{State: machine.State()}, err
	}

	form.ClearError()
	if err := s.storage.SetItem(entity.StorageKeyJWT, res.JWT); err != nil {
		s.fire(ctx, machine, workflow.TriggerLoginFailed)
		return &AuthResult{State: machine.State()}, fmt.Errorf("failed to persist token: %w", err)
	}
	user.JWT = res.JWT

	route := user.Role.HomeRoute()
	s.navigator.Navigate(route)
	s.previousLocation = route
	if s.viewport != nil {
		s.viewport.ResetBackground()
	}

	s.fire(ctx, machine, workflow.TriggerLoginSucceeded)
	s.logger.Info("User authenticated", "email", user.Email, "role", user.Role.String(), "route", route)

	return &AuthResult{
		State:   machine.State(),
		Route:   route,
		Session: user,
	}, nil
}

func (s *sessionManagerImpl) register(ctx context.Context, user *entity.Session, form *entity.LoginForm, machine workflow.StateMachine) (*AuthResult, error) {
	s.fire(ctx, machine, workflow.TriggerRegister)

	err := s.store.Users().Create(ctx, entity.NewUser{
		Type:     user.Role,
		Name:     utils.EmailLocalPart(user.Email),
		Email:    user.Email,
		Password: user.Password,
	})
	if err != nil {
		s.logger.Error("Failed to create user", "email", user.Email, "error", err)
		form.SetError(err.Error())
		s.fire(ctx, machine, workflow.TriggerRegisterFailed)
		return &AuthResult{State: machine.State()}, fmt.Errorf("failed to register %s: %w", user.Email, err)
	}
	s.logger.Info(fmt.Sprintf("User with %s is created", user.Email))

	result, err := s.authenticate(ctx, user, form, machine)
	if err != nil {
		s.logger.Error("Login after registration failed", "email", user.Email, "error", err)
		form.SetError(err.Error())
		return result, fmt.Errorf("failed to login %s after registration: %w", user.Email, err)
	}
	return result, nil
}

// Logout forgets the persisted session and returns to the login view
func (s *sessionManagerImpl) Logout(ctx context.Context) error {
	if err := s.storage.Clear(); err != nil {
		s.logger.Error("Failed to clear session", "error", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.navigator.Navigate(entity.RouteLogin)
	s.previousLocation = entity.RouteLogin
	return nil
}

// PreviousLocation returns the last route reached through this manager
func (s *sessionManagerImpl) PreviousLocation() string {
	return s.previousLocation
}

func (s *sessionManagerImpl) fire(ctx context.Context, machine workflow.StateMachine, trigger workflow.Trigger) {
	if err := machine.Fire(ctx, trigger); err != nil {
		s.logger.Error("Unexpected session transition", "trigger", trigger.String(), "error", err)
	}
}
