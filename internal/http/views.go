package http

import (
	"bytes"
	"net/http"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/services"
)

// Page names understood by the layout template.
const (
	pageLogin     = "login"
	pageRegister  = "register"
	pageDashboard = "dashboard"
	pageAccount   = "account"
)

// pageView feeds the layout template.
type pageView struct {
	Page      string
	Title     string
	Error     string
	Notice    string
	Email     string
	Account   core.AccountInput
	User      core.User
	Confirm   *confirmView
	Dashboard *dashboardView
}

// confirmView asks the user to confirm a destructive action by posting to
// Action again with confirm=true.
type confirmView struct {
	Message string
	Action  string
}

type tabLink struct {
	Tab    services.Tab
	Label  string
	Active bool
}

// dashboardView feeds the tab templates.
type dashboardView struct {
	User  core.User
	Tab   services.Tab
	Tabs  []tabLink
	Load  services.DashboardView
	Kinds []core.Kind

	// Summary tab
	Filter    services.FilterView
	Breakdown []core.CategoryStats
	Latest    []core.Transaction

	// Categories and transactions tabs
	Categories   []core.Category
	CategoryForm services.CategoryForm
	TxForm       services.TransactionForm
	KindFilter   core.Kind
	Visible      []core.Transaction

	Confirm *confirmView
}

var tabLabels = map[services.Tab]string{
	services.TabSummary:      "Resumen",
	services.TabTransactions: "Transacciones",
	services.TabCategories:   "Categorías",
}

func newDashboardView(ws *services.Workspace) *dashboardView {
	load := ws.Dashboard.View()
	filter := ws.Filter.View()
	tab := ws.Tab()

	v := &dashboardView{
		User:         ws.User(),
		Tab:          tab,
		Load:         load,
		Kinds:        []core.Kind{core.KindExpense, core.KindIncome},
		Filter:       filter,
		Breakdown:    core.AggregateByCategory(filter.Transactions).Ranked,
		Latest:       core.Latest(filter.Transactions, core.LatestCount),
		Categories:   load.Snapshot.Categories,
		CategoryForm: ws.Categories.Form(),
		TxForm:       ws.Transactions.Form(),
		KindFilter:   ws.Transactions.Filter(),
		Visible:      ws.Transactions.Visible(load.Snapshot.Transactions),
	}
	for _, t := range services.Tabs {
		v.Tabs = append(v.Tabs, tabLink{Tab: t, Label: tabLabels[t], Active: t == tab})
	}
	return v
}

// render executes a template into a buffer so that a failure never leaves
// a half-written response behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any, b *reply) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).Err(r.Context(),
			"Template execution failed", log.OpRender, err, "template", name)
		serverError("Error al mostrar la página").Write(w)
		return
	}
	if b == nil {
		b = newReply()
	}
	b.HTML(buf.Bytes()).Write(w)
}

// renderPage renders a full page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, v pageView, status int) {
	s.render(w, r, "layout", v, newReply().Status(status))
}

// renderTab re-renders the tab area of the dashboard.
func (s *Server) renderTab(w http.ResponseWriter, r *http.Request, ws *services.Workspace, confirm *confirmView, b *reply) {
	v := newDashboardView(ws)
	v.Confirm = confirm
	s.render(w, r, "tab", v, b)
}
