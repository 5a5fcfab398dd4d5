package services

import (
	"context"
	"sync"
	"time"

	"cashify/internal/core"
	"cashify/internal/log"
)

// Tab is one of the dashboard views.
type Tab string

const (
	TabSummary      Tab = "resumen"
	TabTransactions Tab = "transacciones"
	TabCategories   Tab = "categorias"
)

// Tabs lists the dashboard views in display order.
var Tabs = []Tab{TabSummary, TabTransactions, TabCategories}

// ParseTab maps a tab name to a Tab, defaulting to the summary.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabSummary
}

// Workspace is everything one logged-in browser sees: the selected user,
// the active tab and the components below them. Nothing in it is shared
// with other workspaces.
type Workspace struct {
	Dashboard    *Dashboard
	Filter       *PeriodFilter
	Categories   *CategoryManager
	Transactions *TransactionManager

	mu   sync.Mutex
	user core.User
	tab  Tab
}

// WorkspaceOptions tunes time handling. Zero values mean local time and time.Now.
type WorkspaceOptions struct {
	Location *time.Location
	Now      func() time.Time
	Logger   *log.Logger
}

func NewWorkspace(gw Gateway, user core.User, opts WorkspaceOptions) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	filter := NewPeriodFilter(gw, user.ID, opts.Location, logger)
	return &Workspace{
		Dashboard: NewDashboard(gw, user.ID, logger, func(s core.Snapshot) {
			filter.SetAllTime(s.Summary, s.Transactions)
		}),
		Filter:       filter,
		Categories:   NewCategoryManager(gw, user.ID, logger),
		Transactions: NewTransactionManager(gw, user.ID, opts.Location, opts.Now, logger),
		user:         user,
		tab:          TabSummary,
	}
}

func (w *Workspace) User() core.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

// SetUser replaces the displayed user record. The id never changes.
func (w *Workspace) SetUser(u core.User) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if u.ID == w.user.ID {
		w.user = u
	}
}

func (w *Workspace) Tab() Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

func (w *Workspace) SetTab(t Tab) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tab = t
}

// Reload runs a dashboard load. The all-time view follows through the
// dashboard's commit hook; an applied period is fetched again afterwards.
func (w *Workspace) Reload(ctx context.Context) error {
	if err := w.Dashboard.Load(ctx); err != nil {
		return err
	}
	return w.Filter.Refresh(ctx)
}

// ReloadError is the text to show after a failed Reload.
func (w *Workspace) ReloadError() string {
	if msg := w.Dashboard.View().Error; msg != "" {
		return msg
	}
	if msg := w.Filter.View().Error; msg != "" {
		return msg
	}
	return MsgLoadFailed
}
