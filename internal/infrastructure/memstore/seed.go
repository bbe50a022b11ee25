package memstore

import (
	"context"
	"errors"

	"github.com/garyjia/billed/internal/domain/entity"
)

// Demo accounts created by a seeded store
const (
	DemoEmployeeEmail    = "employee@test.tld"
	DemoEmployeePassword = "employee"
	DemoAdminEmail       = "admin@test.tld"
	DemoAdminPassword    = "admin"
)

func demoBills() []entity.Bill {
	return []entity.Bill{
		{
			ID: "47qAXb6fIm2zOKkLzMro", Email: DemoEmployeeEmail, Type: "Hôtel et logement", Name: "encore",
			Amount: "400", Date: "2004-04-04", VAT: "80", Pct: "20", Commentary: "séminaire billed",
			Status: entity.BillStatusPending, FileName: "preview-facture-free-201801-pdf-1.jpg",
			FileURL: "memory://receipts/47qAXb6fIm2zOKkLzMro/preview-facture-free-201801-pdf-1.jpg",
		},
		{
			ID: "BeKy5Mo4jkmdfPGYpTxZ", Email: DemoEmployeeEmail, Type: "Transports", Name: "test1",
			Amount: "100", Date: "2001-01-01", VAT: "", Pct: "20", Commentary: "plop",
			CommentAdmin: "en fait non", Status: entity.BillStatusRefused, FileName: "1592770761.jpeg",
			FileURL: "memory://receipts/BeKy5Mo4jkmdfPGYpTxZ/1592770761.jpeg",
		},
		{
			ID: "UIUZtnPQvnbFnB0ozvJh", Email: DemoEmployeeEmail, Type: "Services en ligne", Name: "test3",
			Amount: "300", Date: "2003-03-03", VAT: "60", Pct: "20", Commentary: "",
			CommentAdmin: "bon bah d'accord", Status: entity.BillStatusAccepted,
			FileName: "facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png",
			FileURL:  "memory://receipts/UIUZtnPQvnbFnB0ozvJh/facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png",
		},
		{
			ID: "qcCK3SzECmaZAGRrHjaC", Email: DemoEmployeeEmail, Type: "Restaurants et bars", Name: "test2",
			Amount: "200", Date: "2002-02-02", VAT: "40", Pct: "20", Commentary: "test2",
			CommentAdmin: "pas la bonne facture", Status: entity.BillStatusRefused,
			FileName: "preview-facture-free-201801-pdf-1.jpg",
			FileURL:  "memory://receipts/qcCK3SzECmaZAGRrHjaC/preview-facture-free-201801-pdf-1.jpg",
		},
	}
}

// seed adds the demo accounts and bills that are missing, leaving records
// already present (and any decision taken on them) untouched
func (s *Store) seed(ctx context.Context) error {
	accounts := []entity.NewUser{
		{Type: entity.RoleEmployee, Name: "employee", Email: DemoEmployeeEmail, Password: DemoEmployeePassword},
		{Type: entity.RoleAdmin, Name: "admin", Email: DemoAdminEmail, Password: DemoAdminPassword},
	}
	for _, account := range accounts {
		_, exists, err := s.records.GetAccount(ctx, normalizeEmail(account.Email))
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.register(ctx, account); err != nil && !errors.Is(err, entity.ErrAccountExists) {
			return err
		}
	}

	for _, bill := range demoBills() {
		if err := s.records.InsertBill(ctx, bill); err != nil && !errors.Is(err, entity.ErrBillExists) {
			return err
		}
	}
	return nil
}
