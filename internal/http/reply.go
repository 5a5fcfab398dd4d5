package http

import (
	"encoding/json"
	"html/template"
	"net/http"

	"cashify/internal/services"
)

// Client events the page script listens for. They travel in HX-Trigger and
// fire once HTMX has swapped the body in.
const (
	eventFormReset       = "form:reset"
	eventDashboardReload = "dashboard:reload"
	eventNotify          = "show-notification"
)

// How long a toast stays up, in milliseconds.
const (
	successToastMs = 3000
	failureToastMs = 5000
)

type toast struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Duration int    `json:"duration"`
}

// reply collects what one handler answers: status, HTML body, client events
// and an optional HTMX navigation.
type reply struct {
	code     int
	events   map[string]any
	redirect string
	body     []byte
}

func newReply() *reply {
	return &reply{code: http.StatusOK, events: map[string]any{}}
}

func (b *reply) Status(code int) *reply {
	b.code = code
	return b
}

// FormReset clears the input forms on the page after a saved change.
func (b *reply) FormReset() *reply {
	b.events[eventFormReset] = true
	return b
}

// DashboardReload announces that upstream data changed. The tab that made
// the change already carries fresh data in the body.
func (b *reply) DashboardReload(tab services.Tab) *reply {
	b.events[eventDashboardReload] = map[string]string{"tab": string(tab)}
	return b
}

// Success and Failure show a toast. Only one toast is sent per reply; the
// last call wins.
func (b *reply) Success(msg string) *reply {
	b.events[eventNotify] = toast{Type: "success", Message: msg, Duration: successToastMs}
	return b
}

func (b *reply) Failure(msg string) *reply {
	b.events[eventNotify] = toast{Type: "error", Message: msg, Duration: failureToastMs}
	return b
}

// Redirect makes HTMX load url as a full page instead of swapping.
func (b *reply) Redirect(url string) *reply {
	b.redirect = url
	return b
}

func (b *reply) HTML(body []byte) *reply {
	b.body = body
	return b
}

func (b *reply) Write(w http.ResponseWriter) {
	h := w.Header()
	if b.redirect != "" {
		h.Set("HX-Redirect", b.redirect)
	}
	if len(b.events) > 0 {
		if raw, err := json.Marshal(b.events); err == nil {
			h.Set("HX-Trigger", string(raw))
		}
	}
	if len(b.body) > 0 {
		h.Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(b.code)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// errorReply is a bare error fragment. msg is escaped.
func errorReply(code int, msg string) *reply {
	return newReply().Status(code).
		HTML([]byte(`<div class="error" role="alert">` + template.HTMLEscapeString(msg) + `</div>`))
}

func badRequest(msg string) *reply  { return errorReply(http.StatusBadRequest, msg) }
func notFound(msg string) *reply    { return errorReply(http.StatusNotFound, msg) }
func serverError(msg string) *reply { return errorReply(http.StatusInternalServerError, msg) }
