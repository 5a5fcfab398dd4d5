package http

import (
	"errors"
	"net/http"
	"net/url"

	"cashify/internal/core"
	"cashify/internal/services"
)

// mutated reloads the dashboard after a successful change and re-renders
// the tab with a confirmation.
func (s *Server) mutated(w http.ResponseWriter, r *http.Request, ws *services.Workspace, tab services.Tab, notice string) {
	b := newReply().FormReset().DashboardReload(tab)
	if err := ws.Reload(r.Context()); err != nil {
		b.Failure(ws.ReloadError())
	} else {
		b.Success(notice)
	}
	ws.SetTab(tab)
	s.renderTab(w, r, ws, nil, b)
}

// failed re-renders the tab after a rejected change. The form state already
// holds the message.
func (s *Server) failed(w http.ResponseWriter, r *http.Request, ws *services.Workspace, tab services.Tab, msg string) {
	ws.SetTab(tab)
	s.renderTab(w, r, ws, nil, newReply().Failure(msg))
}

// lookupCategory resolves the {id} path value against the loaded categories.
func (s *Server) lookupCategory(w http.ResponseWriter, r *http.Request, ws *services.Workspace) (core.Category, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest("Identificador inválido").Write(w)
		return core.Category{}, false
	}
	c, ok := core.FindCategory(ws.Dashboard.View().Snapshot.Categories, id)
	if !ok {
		notFound("Categoría no encontrada").Write(w)
		return core.Category{}, false
	}
	return c, true
}

func (s *Server) handleCategorySubmit(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}

	if r.PathValue("id") != "" {
		c, ok := s.lookupCategory(w, r, ws)
		if !ok {
			return
		}
		if ws.Categories.Form().EditingID != c.ID {
			ws.Categories.Edit(c)
		}
	} else if ws.Categories.Form().Editing() {
		ws.Categories.Cancel()
	}

	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	if err := ws.Categories.Submit(r.Context(), categoryInput(p)); err != nil {
		s.failed(w, r, ws, services.TabCategories, services.UserMessage(err, services.MsgCategorySaveFailed))
		return
	}
	s.mutated(w, r, ws, services.TabCategories, "Categoría guardada")
}

func (s *Server) handleCategoryEdit(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	c, ok := s.lookupCategory(w, r, ws)
	if !ok {
		return
	}
	ws.Categories.Edit(c)
	ws.SetTab(services.TabCategories)
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleCategoryCancel(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.requireWorkspace(w, r)
	if !ok {
		return
	}
	ws.Categories.Cancel()
	ws.SetTab(services.TabCategories)
	s.renderTab(w, r, ws, nil, nil)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
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

	err = ws.Categories.Delete(r.Context(), id, isConfirmed(p))
	switch {
	case errors.Is(err, services.ErrConfirmationRequired):
		ws.SetTab(services.TabCategories)
		s.renderTab(w, r, ws, &confirmView{
			Message: services.ConfirmDeleteCategory,
			Action:  "/categories/" + url.PathEscape(id) + "/delete",
		}, nil)
	case err != nil:
		s.failed(w, r, ws, services.TabCategories, services.UserMessage(err, services.MsgCategoryDelFailed))
	default:
		s.mutated(w, r, ws, services.TabCategories, "Categoría eliminada")
	}
}
