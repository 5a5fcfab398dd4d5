package http

import (
	"context"
	"net/http"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/services"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect navigates the browser, through HTMX when the request came from it.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if isHTMX(r) {
		newReply().Redirect(url).Write(w)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// requireWorkspace returns the logged-in workspace or sends the browser to
// the login page.
func (s *Server) requireWorkspace(w http.ResponseWriter, r *http.Request) (*services.Workspace, bool) {
	if sess, ok := s.sessions.FromRequest(r); ok {
		if ws := sess.Workspace(); ws != nil {
			return ws, true
		}
	}
	redirect(w, r, "/")
	return nil, false
}

// startWorkspace binds a fresh workspace for u to a new session and runs
// the first dashboard load. A failed load is shown on the dashboard.
func (s *Server) startWorkspace(ctx context.Context, w http.ResponseWriter, r *http.Request, u core.User) {
	sess := s.sessions.Rotate(w, r, s.cookieSecure)
	ws := services.NewWorkspace(s.gw, u, services.WorkspaceOptions{
		Location: s.loc,
		Now:      s.now,
		Logger:   s.logger,
	})
	sess.SetWorkspace(ws)
	_ = ws.Reload(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.sessions.FromRequest(r); ok {
		if ws := sess.Workspace(); ws != nil {
			s.renderPage(w, r, pageView{
				Page:      pageDashboard,
				Title:     "Panel",
				User:      ws.User(),
				Dashboard: newDashboardView(ws),
			}, http.StatusOK)
			return
		}
	}
	s.renderPage(w, r, pageView{Page: pageLogin, Title: "Iniciar sesión"}, http.StatusOK)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	in := loginInput(p)

	u, err := s.accounts.Login(r.Context(), in)
	if err != nil {
		s.renderPage(w, r, pageView{
			Page:  pageLogin,
			Title: "Iniciar sesión",
			Error: services.UserMessage(err, services.MsgLoginFailed),
			Email: in.Email,
		}, http.StatusOK)
		return
	}

	s.startWorkspace(r.Context(), w, r, u)
	redirect(w, r, "/")
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, pageView{Page: pageRegister, Title: "Crear cuenta"}, http.StatusOK)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	in := accountInput(p)

	u, err := s.accounts.Register(r.Context(), in)
	if err != nil {
		in.Password = ""
		s.renderPage(w, r, pageView{
			Page:    pageRegister,
			Title:   "Crear cuenta",
			Error:   services.UserMessage(err, services.MsgRegisterFailed),
			Account: in,
		}, http.StatusOK)
		return
	}

	s.startWorkspace(r.Context(), w, r, u)
	redirect(w, r, "/")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.sessions.FromRequest(r); ok {
		if ws := sess.Workspace(); ws != nil {
			log.FromContext(r.Context()).InfoContext(r.Context(), "User logged out", log.FieldUserID, ws.User().ID)
		}
		sess.Clear()
	}
	s.sessions.Expire(w, r)
	redirect(w, r, "/")
}
