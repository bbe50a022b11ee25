package entity

// LoginForm is the state of one role's login form.
// It holds at most one inline error at a time.
type LoginForm struct {
	Role     Role
	Email    string
	Password string

	errorMessage string
	hasError     bool
}

// NewLoginForm creates an empty login form for a role
func NewLoginForm(role Role) *LoginForm {
	return &LoginForm{Role: role}
}

// ID returns the form's stable identifier
func (f *LoginForm) ID() string {
	if f.Role == RoleAdmin {
		return IDFormAdmin
	}
	return IDFormEmployee
}

// SetError shows an inline error, replacing any error already visible
func (f *LoginForm) SetError(message string) {
	f.errorMessage = message
	f.hasError = true
}

// ClearError removes the inline error if one is visible
func (f *LoginForm) ClearError() {
	f.errorMessage = ""
	f.hasError = false
}

// Error returns the visible inline error
func (f *LoginForm) Error() (string, bool) {
	return f.errorMessage, f.hasError
}

// NewBillForm holds the text fields of the new bill form
type NewBillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// ReceiptFile is a file selected in the receipt input
type ReceiptFile struct {
	Name      string
	MediaType string
	Content   []byte
}

// FileInput mirrors the receipt file input element
type FileInput struct {
	Files []*ReceiptFile
	Value string
}

// Select replaces the input's selection with a single file
func (in *FileInput) Select(file *ReceiptFile) {
	in.Files = []*ReceiptFile{file}
	in.Value = file.Name
}

// Reset clears the selection and the value
func (in *FileInput) Reset() {
	in.Files = nil
	in.Value = ""
}

// FormField is one text part of a multipart payload
type FormField struct {
	Name  string
	Value string
}

// Draft is the multipart payload accumulated for one bill submission
type Draft struct {
	File   *ReceiptFile
	Fields []FormField
}

// SetFile attaches the receipt; a later file replaces an earlier one
func (d *Draft) SetFile(file *ReceiptFile) {
	d.File = file
}

// Append adds a text part
func (d *Draft) Append(name, value string) {
	d.Fields = append(d.Fields, FormField{Name: name, Value: value})
}

// Get returns the first value appended under name
func (d *Draft) Get(name string) (string, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Reset discards the file and every field
func (d *Draft) Reset() {
	d.File = nil
	d.Fields = nil
}

// CreateResult is returned when the remote store accepts a new bill
type CreateResult struct {
	Key     string `json:"key"`
	FileURL string `json:"fileUrl,omitempty"`
}
