package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"go.uber.org/zap"
)

type billCollection struct {
	client *Client
}

// List returns the bills visible to the token's owner. Rows that do not
// decode, such as an unknown status, are logged and dropped.
func (b *billCollection) List(ctx context.Context) ([]entity.Bill, error) {
	var rows []json.RawMessage
	if err := b.client.do(ctx, http.MethodGet, "/bills", nil, "", true, &rows); err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(rows))
	for i, row := range rows {
		bill, err := decodeBill(row)
		if err != nil {
			b.client.logger.Error("Skipping invalid bill",
				zap.Int("index", i),
				zap.String("id", rawID(row)),
				zap.Error(err))
			continue
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// decodeBill decodes one row; a missing status is as invalid as an unknown one
func decodeBill(row json.RawMessage) (entity.Bill, error) {
	var bill entity.Bill
	if err := json.Unmarshal(row, &bill); err != nil {
		return entity.Bill{}, err
	}
	if _, err := entity.ParseBillStatus(bill.Status.String()); err != nil {
		return entity.Bill{}, err
	}
	return bill, nil
}

// rawID extracts the id of a row that failed to decode, for logging
func rawID(row json.RawMessage) string {
	var partial struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(row, &partial)
	return partial.ID
}

// Create posts the draft as multipart form data
func (b *billCollection) Create(ctx context.Context, draft *entity.Draft) (*entity.CreateResult, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, err
	}

	var created struct {
		Key     string `json:"key"`
		ID      string `json:"id"`
		FileURL string `json:"fileUrl"`
	}
	if err := b.client.do(ctx, http.MethodPost, "/bills", body, contentType, true, &created); err != nil {
		return nil, err
	}

	key := created.Key
	if key == "" {
		key = created.ID
	}
	b.client.logger.Info("Bill created", zap.String("key", key))
	return &entity.CreateResult{Key: key, FileURL: created.FileURL}, nil
}

// Update replaces the bill identified by selector
func (b *billCollection) Update(ctx context.Context, bill *entity.Bill, selector string) (*entity.Bill, error) {
	body, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bill: %w", err)
	}

	var updated entity.Bill
	path := "/bills/" + url.PathEscape(selector)
	if err := b.client.do(ctx, http.MethodPatch, path, bytes.NewReader(body), "application/json", true, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type userCollection struct {
	client *Client
}

// Create registers a new user
func (u *userCollection) Create(ctx context.Context, user entity.NewUser) error {
	body, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return u.client.do(ctx, http.MethodPost, "/users", bytes.NewReader(body), "application/json", false, nil)
}

// encodeDraft writes the receipt under "file" followed by the text fields
func encodeDraft(draft *entity.Draft) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if draft.File != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, entity.FieldFile, escapeQuotes(draft.File.Name)))
		header.Set("Content-Type", draft.File.MediaType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(draft.File.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}

	for _, field := range draft.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

var (
	_ port.BillCollection = (*billCollection)(nil)
	_ port.UserCollection = (*userCollection)(nil)
)
