package port

import (
	"context"

	"github.com/garyjia/billed/internal/domain/entity"
)

// RemoteStore is the collection-oriented facade over the expense backend.
// Every call may fail with an error carrying a human-readable message.
type RemoteStore interface {
	Bills() BillCollection
	Users() UserCollection
	Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error)
}

// BillCollection defines operations on the bills collection
type BillCollection interface {
	// List returns the bills visible to the signed-in identity
	List(ctx context.Context) ([]entity.Bill, error)

	// Create submits a multipart draft; the transport chooses the content type
	Create(ctx context.Context, draft *entity.Draft) (*entity.CreateResult, error)

	// Update replaces the bill identified by selector
	Update(ctx context.Context, bill *entity.Bill, selector string) (*entity.Bill, error)
}

// UserCollection defines operations on the users collection
type UserCollection interface {
	Create(ctx context.Context, user entity.NewUser) error
}
