package terminal

import (
	"bytes"
	"testing"

	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_BillList(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	err := r.BillList(entity.BillListView{Bills: []entity.Bill{
		{ID: "1", Type: "Transports", Name: "Vol", Date: "2004-04-04", Amount: "400", Status: entity.BillStatusPending},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[tbody]")
	assert.Contains(t, out, "[btn-new-bill]")
	assert.Contains(t, out, "[icon-eye]")
	assert.Contains(t, out, "En attente")
	assert.NotContains(t, out, "[error-message]")
}

func TestRenderer_BillListError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.BillList(entity.BillListView{Error: "Erreur 404"}))

	assert.Equal(t, "[error-message] Erreur 404\n", buf.String())
}

func TestRenderer_DashboardError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Dashboard(entity.DashboardView{Error: "Erreur 500"}))

	assert.Equal(t, "[error-message] Erreur 500\n", buf.String())
}

func TestRenderer_Dashboard(t *testing.T) {
	bill := entity.Bill{ID: "47qAXb6fIm2zOKkLzMro", Email: "firstname.lastname@test.tld", Name: "encore", Amount: "400", Status: entity.BillStatusPending}
	groups := []entity.StatusGroup{
		{Index: 1, Status: entity.BillStatusPending, Count: 1, Total: decimal.NewFromInt(400), Expanded: true, Bills: []entity.Bill{bill}},
		{Index: 2, Status: entity.BillStatusAccepted, Total: decimal.Zero},
		{Index: 3, Status: entity.BillStatusRefused, Total: decimal.Zero},
	}

	t.Run("default view", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf).Dashboard(entity.DashboardView{Groups: groups}))

		out := buf.String()
		assert.Contains(t, out, "[arrow-icon1] En attente (1)")
		assert.Contains(t, out, "[status-bills-container1]")
		assert.Contains(t, out, "[open-bill47qAXb6fIm2zOKkLzMro]")
		assert.Contains(t, out, "firstname lastname")
		assert.NotContains(t, out, "firstname.lastname")
		assert.Contains(t, out, "400.00 €")
		assert.NotContains(t, out, "[status-bills-container2]")
		assert.Contains(t, out, "[big-billed-icon]")
		assert.NotContains(t, out, "[dashboard-form]")
	})

	t.Run("pending detail", func(t *testing.T) {
		var buf bytes.Buffer
		view := entity.DashboardView{Groups: groups, Detail: &entity.BillDetail{Bill: bill, Group: 1, Decidable: true}}
		require.NoError(t, NewRenderer(&buf).Dashboard(view))

		out := buf.String()
		assert.Contains(t, out, "[dashboard-form]")
		assert.Contains(t, out, "[icon-eye-d]")
		assert.Contains(t, out, "[btn-accept-bill-d]")
		assert.Contains(t, out, "[btn-refuse-bill-d]")
		assert.NotContains(t, out, "[big-billed-icon]")
	})

	t.Run("decided detail", func(t *testing.T) {
		var buf bytes.Buffer
		refused := bill
		refused.Status = entity.BillStatusRefused
		refused.CommentAdmin = "pas la bonne facture"
		view := entity.DashboardView{Groups: groups, Detail: &entity.BillDetail{Bill: refused, Group: 3}}
		require.NoError(t, NewRenderer(&buf).Dashboard(view))

		out := buf.String()
		assert.Contains(t, out, "pas la bonne facture")
		assert.NotContains(t, out, "[btn-accept-bill-d]")
	})
}

func TestRenderer_LoginErrorAndNavigation(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	form := entity.NewLoginForm(entity.RoleAdmin)
	r.LoginError(form)
	assert.Empty(t, buf.String())

	form.SetError("Invalid credentials")
	r.LoginError(form)
	assert.Equal(t, "[form-admin] [login-error] Invalid credentials\n", buf.String())

	buf.Reset()
	r.Navigate(entity.RouteDashboard)
	r.Alert(entity.FileTypeErrorMessage)
	assert.Equal(t, "→ Dashboard\n! "+entity.FileTypeErrorMessage+"\n", buf.String())
}
