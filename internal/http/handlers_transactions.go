package http

import (
	"errors"
	"net/http"
	"net/url"
	"slices"

	"cashify/internal/core"
	"cashify/internal/services"
)

// lookupTransaction resolves the {id} path value against the loaded transactions.
func (s *Server) lookupTransaction(w http.ResponseWriter, r *http.Request, ws *services.Workspace) (core.Transaction, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest("Identificador inválido").Write(w)
		return core.Transaction{}, false
	}
	txs := ws.Dashboard.View().Snapshot.Transactions
	i := slices.IndexFunc(txs, func(tx core.Transaction) bool { return tx.ID == id })
	if i < 0 {
		notFound("Transacción no encontrada").Write(w)
		return core.Transaction{}, false
	}
	return txs[i], true
}

func (s *Server) handleTransactionSubmit(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}

	if r.PathValue("id") != "" {
		tx, ok := s.lookupTransaction(w, r, ws)
		if !ok {
			return
		}
		if ws.Transactions.Form().EditingID != tx.ID {
			ws.Transactions.Edit(tx)
		}
	} else if ws.Transactions.Form().Editing() {
		ws.Transactions.Cancel()
	}

	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	if err := ws.Transactions.Submit(r.Context(), transactionInput(p)); err != nil {
		s.failed(w, r, ws, services.TabTransactions, services.UserMessage(err, services.MsgTxSaveFailed))
		return
	}
	s.mutated(w, r, ws, services.TabTransactions, "Transacción guardada")
}

func (s *Server) handleTransactionEdit(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	tx, ok := s.lookupTransaction(w, r, ws)
	if !ok {
		return
	}
	ws.Transactions.Edit(tx)
	ws.SetTab(services.TabTransactions)
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleTransactionCancel(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	ws.Transactions.Cancel()
	ws.SetTab(services.TabTransactions)
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		badRequest("Identificador inválido").Write(w)
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	err = ws.Transactions.Delete(r.Context(), id, isConfirmed(p))
	switch {
	case errors.Is(err, services.ErrConfirmationRequired):
		ws.SetTab(services.TabTransactions)
		s.renderTab(w, r, ws, &confirmView{
			Message: services.ConfirmDeleteTransaction,
			Action:  "/transactions/" + url.PathEscape(id) + "/delete",
		}, nil)
	case err != nil:
		s.failed(w, r, ws, services.TabTransactions, services.UserMessage(err, services.MsgTxDeleteFailed))
	default:
		s.mutated(w, r, ws, services.TabTransactions, "Transacción eliminada")
	}
}
