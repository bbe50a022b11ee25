package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/pkg/utils"
)

// Renderer writes view models as plain text. Every region is tagged with
// the identifier the views are addressed by, e.g. "[tbody]".
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Navigate prints the route the application moved to
func (r *Renderer) Navigate(pathname string) {
	fmt.Fprintf(r.w, "→ %s\n", routeName(pathname))
}

// Alert prints a blocking message
func (r *Renderer) Alert(message string) {
	fmt.Fprintf(r.w, "! %s\n", message)
}

// ResetBackground is a no-op on a terminal
func (r *Renderer) ResetBackground() {}

// LoginError prints the inline error of a login form, if any
func (r *Renderer) LoginError(form *entity.LoginForm) {
	if msg, ok := form.Error(); ok {
		fmt.Fprintf(r.w, "[%s] [%s] %s\n", form.ID(), entity.IDLoginError, msg)
	}
}

// BillList prints the employee bill table, or the error region when the fetch failed
func (r *Renderer) BillList(view entity.BillListView) error {
	if view.Loading {
		_, err := fmt.Fprintln(r.w, "Loading...")
		return err
	}
	if view.HasError() {
		_, err := fmt.Fprintf(r.w, "[%s] %s\n", entity.IDErrorMessage, view.Error)
		return err
	}

	fmt.Fprintf(r.w, "Mes notes de frais  [%s]\n", entity.IDNewBillButton)
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "[%s]\nID\tType\tNom\tDate\tMontant\tStatut\tActions\n", entity.IDBillsTable)
	for _, b := range view.Bills {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s €\t%s\t[%s]\n",
			b.ID, b.Type, b.Name, b.Date, b.Amount, b.Status.Label(), entity.IDIconEye)
	}
	return tw.Flush()
}

// Lightbox prints the receipt preview
func (r *Renderer) Lightbox(box entity.Lightbox) {
	fmt.Fprintf(r.w, "Justificatif: %s\n%s\n", box.FileName, box.ImageURL)
}

// Dashboard prints the status groups and either the open detail or the big
// icon, or only the error page when the fetch failed
func (r *Renderer) Dashboard(view entity.DashboardView) error {
	if view.HasError() {
		_, err := fmt.Fprintf(r.w, "[%s] %s\n", entity.IDErrorMessage, view.Error)
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	for _, g := range view.Groups {
		arrow := "▸"
		if g.Expanded {
			arrow = "▾"
		}
		fmt.Fprintf(tw, "%s [%s] %s\t%s €\n", arrow, g.ArrowID(), g.Heading(), g.Total.StringFixed(2))
		if !g.Expanded {
			continue
		}
		fmt.Fprintf(tw, "  [%s]\n", g.ContainerID())
		for _, b := range g.Bills {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\t%s\t%s €\t%s\n",
				entity.OpenBillID(b.ID), utils.DisplayName(b.Email), b.Name, b.Date, b.Amount, b.Status.Label())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.w, strings.Repeat("─", 40))
	if view.ShowsBigIcon() {
		_, err := fmt.Fprintf(r.w, "[%s]\n", entity.IDBigBilledIcon)
		return err
	}
	return r.detail(view.Detail)
}

func (r *Renderer) detail(d *entity.BillDetail) error {
	b := d.Bill
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "[%s]\n", entity.IDDashboardForm)
	fmt.Fprintf(tw, "Type de dépense\t%s\n", b.Type)
	fmt.Fprintf(tw, "Nom de la dépense\t%s\n", b.Name)
	fmt.Fprintf(tw, "Date\t%s\n", b.Date)
	fmt.Fprintf(tw, "Montant TTC\t%s €\n", b.Amount)
	fmt.Fprintf(tw, "TVA\t%s\n", b.VAT)
	fmt.Fprintf(tw, "Commentaire\t%s\n", b.Commentary)
	fmt.Fprintf(tw, "Justificatif\t%s [%s]\n", b.FileName, entity.IDIconEyeDetail)
	if d.Decidable {
		fmt.Fprintf(tw, "Actions\t[%s] [%s]\n", entity.IDAcceptBillButton, entity.IDRefuseBillButton)
	} else {
		fmt.Fprintf(tw, "Commentaire admin\t%s\n", b.CommentAdmin)
	}
	return tw.Flush()
}

func routeName(pathname string) string {
	switch pathname {
	case entity.RouteLogin:
		return "Login"
	case entity.RouteBills:
		return "Bills"
	case entity.RouteNewBill:
		return "NewBill"
	case entity.RouteDashboard:
		return "Dashboard"
	default:
		return pathname
	}
}
