package http

import (
	"errors"
	"net/http"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/services"
)

func accountForm(u core.User) core.AccountInput {
	return core.AccountInput{Handle: u.Handle, Email: u.Email}
}

func (s *Server) handleAccountPage(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	u := ws.User()
	if fresh, err := s.accounts.Refresh(r.Context(), u.ID); err == nil {
		ws.SetUser(fresh)
		u = fresh
	} else {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Account refresh failed",
			log.NewFields().WithOperation(log.OpRead).WithUser(u.ID).WithError(err).ToSlice()...)
	}
	s.renderPage(w, r, pageView{Page: pageAccount, Title: "Mi cuenta", User: u, Account: accountForm(u)}, http.StatusOK)
}

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	in := accountInput(p)
	u := ws.User()

	updated, err := s.accounts.Update(r.Context(), u.ID, in)
	if err != nil {
		in.Password = ""
		s.renderPage(w, r, pageView{
			Page:    pageAccount,
			Title:   "Mi cuenta",
			User:    u,
			Account: in,
			Error:   services.UserMessage(err, services.MsgAccountSaveFailed),
		}, http.StatusOK)
		return
	}

	ws.SetUser(updated)
	s.renderPage(w, r, pageView{
		Page:    pageAccount,
		Title:   "Mi cuenta",
		User:    updated,
		Account: accountForm(updated),
		Notice:  "Cuenta actualizada",
	}, http.StatusOK)
}

func (s *Server) handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	u := ws.User()

	err := s.accounts.Delete(r.Context(), u.ID, isConfirmed(p))
	switch {
	case errors.Is(err, services.ErrConfirmationRequired):
		s.renderPage(w, r, pageView{
			Page:    pageAccount,
			Title:   "Mi cuenta",
			User:    u,
			Account: accountForm(u),
			Confirm: &confirmView{Message: services.ConfirmDeleteAccount, Action: "/account/delete"},
		}, http.StatusOK)
	case err != nil:
		s.renderPage(w, r, pageView{
			Page:    pageAccount,
			Title:   "Mi cuenta",
			User:    u,
			Account: accountForm(u),
			Error:   services.UserMessage(err, services.MsgAccountDeleteFail),
		}, http.StatusOK)
	default:
		if sess, ok := s.sessions.FromRequest(r); ok {
			sess.Clear()
		}
		s.sessions.Expire(w, r)
		redirect(w, r, "/")
	}
}
