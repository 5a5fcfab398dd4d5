package http

import (
	"net/http"

	"cashify/internal/core"
	"cashify/internal/services"
)

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	ws.SetTab(services.ParseTab(r.PathValue("tab")))
	s.renderTab(w, r, ws, nil, nil)
}

// handleReload re-runs the dashboard load, the retry path after a failure.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	b := newReply()
	if err := ws.Reload(r.Context()); err != nil {
		b.Failure(ws.ReloadError())
	}
	s.renderTab(w, r, ws, nil, b)
}

func (s *Server) handleFilterApply(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	ws.SetTab(services.TabSummary)
	// Failures are part of the filter view.
	_ = ws.Filter.Apply(r.Context(), periodInput(p))
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleFilterQuick(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	if err := ws.Filter.QuickRange(core.RangeUnit(r.PathValue("unit")), s.now()); err != nil {
		notFound("Rango desconocido").Write(w)
		return
	}
	ws.SetTab(services.TabSummary)
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleFilterClear(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	ws.Filter.Clear()
	ws.SetTab(services.TabSummary)
	s.renderTab(w, r, ws, nil, nil)
}

// handleTransactionList re-renders the transaction list for a kind filter.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	ws.Transactions.SetFilter(r.URL.Query().Get(fieldKindFilter))
	s.render(w, r, "transaction-list", newDashboardView(ws), nil)
}
