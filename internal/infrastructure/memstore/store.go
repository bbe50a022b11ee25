package memstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailExists is returned when registering an email twice
	ErrEmailExists = entity.ErrAccountExists

	// ErrMissingToken is returned by bill operations without a persisted token
	ErrMissingToken = errors.New("authorization token required")

	// ErrBillNotFound is returned when updating an unknown bill
	ErrBillNotFound = entity.ErrBillNotFound
)

// Config configures the in-process store
type Config struct {
	JWTSecret     string
	TokenDuration time.Duration
	BcryptCost    int
	Seed          bool
}

// Store implements port.RemoteStore in process. Accounts and bills live in
// records, which may be backed by the session database. Bill calls read the
// token persisted in storage to know who is asking: employees see their own
// bills, admins see every bill.
type Store struct {
	records port.BackendRecords
	cost    int
	tokens  *tokenManager

	storage port.KeyValueStore
	logger  *zap.Logger
}

// New creates a store over records, seeded with demo accounts and bills when
// cfg.Seed is set. A nil records keeps everything in memory.
func New(ctx context.Context, cfg Config, storage port.KeyValueStore, records port.BackendRecords, logger *zap.Logger) (*Store, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.TokenDuration <= 0 {
		cfg.TokenDuration = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	if records == nil {
		records = memory.NewRecordStore()
	}

	s := &Store{
		records: records,
		cost:    cfg.BcryptCost,
		tokens:  newTokenManager(cfg.JWTSecret, cfg.TokenDuration),
		storage: storage,
		logger:  logger,
	}

	if cfg.Seed {
		if err := s.seed(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}
	return s, nil
}

// Bills returns the bills collection
func (s *Store) Bills() port.BillCollection {
	return &billCollection{store: s}
}

// Users returns the users collection
func (s *Store) Users() port.UserCollection {
	return &userCollection{store: s}
}

// Login checks the password and issues a token
func (s *Store) Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error) {
	u, ok, err := s.records.GetAccount(ctx, normalizeEmail(creds.Email))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.generate(u)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.String("email", u.Email), zap.String("role", u.Role.String()))
	return &entity.LoginResult{JWT: token}, nil
}

func (s *Store) register(ctx context.Context, newUser entity.NewUser) error {
	role, err := entity.ParseRole(newUser.Type.String())
	if err != nil {
		return err
	}
	email := normalizeEmail(newUser.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newUser.Password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.records.InsertAccount(ctx, entity.Account{
		ID:           uuid.NewString(),
		Name:         newUser.Name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	s.logger.Info("User registered", zap.String("email", email), zap.String("role", role.String()))
	return nil
}

// caller resolves the persisted token to its claims
func (s *Store) caller() (*Claims, error) {
	token, ok, err := s.storage.GetItem(entity.StorageKeyJWT)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return nil, ErrMissingToken
	}
	return s.tokens.validate(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ port.RemoteStore = (*Store)(nil)
