package entity

// Persistence keys
const (
	StorageKeyUser = "user"
	StorageKeyJWT  = "jwt"
)

// Routes understood by the navigator
const (
	RouteLogin     = "/"
	RouteBills     = "#employee/bills"
	RouteNewBill   = "#employee/bill/new"
	RouteDashboard = "#admin/dashboard"
)

// FileTypeErrorMessage is shown when a receipt is rejected
const FileTypeErrorMessage = "Seul les fichiers png, jpg et jpg sont acceptés"

// AcceptedReceiptTypes lists the media types a receipt may have
var AcceptedReceiptTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
}

// Stable identifiers of interactive elements and state regions
const (
	IDFormEmployee     = "form-employee"
	IDFormAdmin        = "form-admin"
	IDFormNewBill      = "form-new-bill"
	IDLoginError       = "login-error"
	IDErrorMessage     = "error-message"
	IDBillsTable       = "tbody"
	IDNewBillButton    = "btn-new-bill"
	IDIconEye          = "icon-eye"
	IDIconEyeDetail    = "icon-eye-d"
	IDDashboardForm    = "dashboard-form"
	IDBigBilledIcon    = "big-billed-icon"
	IDAcceptBillButton = "btn-accept-bill-d"
	IDRefuseBillButton = "btn-refuse-bill-d"
	IDArrowIconPrefix  = "arrow-icon"
	IDContainerPrefix  = "status-bills-container"
	IDOpenBillPrefix   = "open-bill"
)

// Form field names of a bill submission, in submission order
const (
	FieldFile       = "file"
	FieldEmail      = "email"
	FieldType       = "type"
	FieldName       = "name"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldVAT        = "vat"
	FieldPct        = "pct"
	FieldCommentary = "commentary"
	FieldStatus     = "status"
)
