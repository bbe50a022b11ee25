package service

import (
	"context"
	"errors"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// Mock remote store
type mockStore struct {
	bills *mockBills
	users *mockUsers

	loginFunc  func(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error)
	loginCalls int
	billsCalls int
	usersCalls int
}

func newMockStore() *mockStore {
	return &mockStore{bills: &mockBills{}, users: &mockUsers{}}
}

func (m *mockStore) Bills() port.BillCollection {
	m.billsCalls++
	return m.bills
}

func (m *mockStore) Users() port.UserCollection {
	m.usersCalls++
	return m.users
}

// calls counts every interaction with the store
func (m *mockStore) calls() int {
	return m.loginCalls + m.billsCalls + m.usersCalls + m.bills.updateCalls + len(m.bills.created)
}

func (m *mockStore) Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error) {
	m.loginCalls++
	if m.loginFunc != nil {
		return m.loginFunc(ctx, creds)
	}
	return &entity.LoginResult{JWT: "token-" + creds.Email}, nil
}

type mockBills struct {
	listFunc   func(ctx context.Context) ([]entity.Bill, error)
	createFunc func(ctx context.Context, draft *entity.Draft) (*entity.CreateResult, error)
	updateFunc func(ctx context.Context, bill *entity.Bill, selector string) (*entity.Bill, error)

	created     []*entity.Draft
	updated     []entity.Bill
	updateCalls int
}

func (m *mockBills) List(ctx context.Context) ([]entity.Bill, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []entity.Bill{}, nil
}

func (m *mockBills) Create(ctx context.Context, draft *entity.Draft) (*entity.CreateResult, error) {
	m.created = append(m.created, draft)
	if m.createFunc != nil {
		return m.createFunc(ctx, draft)
	}
	return &entity.CreateResult{Key: "1234"}, nil
}

func (m *mockBills) Update(ctx context.Context, bill *entity.Bill, selector string) (*entity.Bill, error) {
	m.updateCalls++
	m.updated = append(m.updated, *bill)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, bill, selector)
	}
	return bill, nil
}

type mockUsers struct {
	createFunc func(ctx context.Context, user entity.NewUser) error
	created    []entity.NewUser
}

func (m *mockUsers) Create(ctx context.Context, user entity.NewUser) error {
	m.created = append(m.created, user)
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

// Mock persistence
type mockKV struct {
	items   map[string]string
	setErr  error
	cleared int
}

func newMockKV() *mockKV {
	return &mockKV{items: make(map[string]string)}
}

func (m *mockKV) GetItem(key string) (string, bool, error) {
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *mockKV) SetItem(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	return nil
}

func (m *mockKV) Clear() error {
	m.cleared++
	m.items = make(map[string]string)
	return nil
}

type mockNavigator struct {
	paths []string
}

func (m *mockNavigator) Navigate(pathname string) {
	m.paths = append(m.paths, pathname)
}

func (m *mockNavigator) last() string {
	if len(m.paths) == 0 {
		return ""
	}
	return m.paths[len(m.paths)-1]
}

type mockAlerter struct {
	messages []string
}

func (m *mockAlerter) Alert(message string) {
	m.messages = append(m.messages, message)
}

type mockViewport struct {
	resets int
}

func (m *mockViewport) ResetBackground() {
	m.resets++
}

type mockLogger struct {
	infos  []string
	errors []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.infos = append(m.infos, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.errors = append(m.errors, msg)
}

// fixtureBills mirrors the four bills the dashboard is usually exercised with
func fixtureBills() []entity.Bill {
	return []entity.Bill{
		{ID: "47qAXb6fIm2zOKkLzMro", Email: "a@a", Type: "Hôtel et logement", Name: "encore", Amount: "400", Date: "2004-04-04", VAT: "80", Pct: "20", Status: entity.BillStatusPending, FileName: "preview-facture-free-201801-pdf-1.jpg", FileURL: "https://test.storage.tld/v0/b/billable-677b6.a…f-1.jpg"},
		{ID: "BeKy5Mo4jkmdfPGYpTxZ", Email: "a@a", Type: "Transports", Name: "test1", Amount: "100", Date: "2001-01-01", VAT: "", Pct: "20", Status: entity.BillStatusRefused, FileName: "1592770761.jpeg", FileURL: "https://test.storage.tld/v0/b/billable-677b6.a…61.jpeg"},
		{ID: "UIUZtnPQvnbFnB0ozvJh", Email: "a@a", Type: "Services en ligne", Name: "test3", Amount: "300", Date: "2003-03-03", VAT: "60", Pct: "20", Status: entity.BillStatusAccepted, FileName: "facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png", FileURL: "https://test.storage.tld/v0/b/billable-677b6.a…dur.png"},
		{ID: "qcCK3SzECmaZAGRrHjaC", Email: "a@a", Type: "Restaurants et bars", Name: "test2", Amount: "200", Date: "2002-02-02", VAT: "40", Pct: "20", Status: entity.BillStatusRefused, FileName: "preview-facture-free-201801-pdf-1.jpg", FileURL: "https://test.storage.tld/v0/b/billable-677b6.a…f-1.jpg"},
	}
}

var errBackend = errors.New("Erreur 500")

var _ port.RemoteStore = (*mockStore)(nil)

type mockExporter struct {
	exportFunc func(ctx context.Context, groups []entity.StatusGroup, outputPath string) error
	groups     []entity.StatusGroup
	path       string
}

func (m *mockExporter) Export(ctx context.Context, groups []entity.StatusGroup, outputPath string) error {
	m.groups = groups
	m.path = outputPath
	if m.exportFunc != nil {
		return m.exportFunc(ctx, groups, outputPath)
	}
	return nil
}
