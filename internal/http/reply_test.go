package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cashify/internal/services"
)

func triggers(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	raw := w.Header().Get("HX-Trigger")
	if raw == "" {
		return nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("HX-Trigger is not a JSON object: %q", raw)
	}
	return out
}

func TestReply_SavedChange(t *testing.T) {
	w := httptest.NewRecorder()

	newReply().
		FormReset().
		DashboardReload(services.TabCategories).
		Success("Categoría guardada").
		HTML([]byte(`<div id="tab-content"></div>`)).
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	ev := triggers(t, w)
	if _, ok := ev[eventFormReset]; !ok {
		t.Errorf("missing %s in %v", eventFormReset, ev)
	}
	var reload struct{ Tab string }
	if err := json.Unmarshal(ev[eventDashboardReload], &reload); err != nil || reload.Tab != "categorias" {
		t.Errorf("%s = %s, want tab categorias", eventDashboardReload, ev[eventDashboardReload])
	}
	var n toast
	if err := json.Unmarshal(ev[eventNotify], &n); err != nil {
		t.Fatalf("%s: %v", eventNotify, err)
	}
	if n != (toast{Type: "success", Message: "Categoría guardada", Duration: successToastMs}) {
		t.Errorf("toast = %+v", n)
	}
}

func TestReply_FailureReplacesSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	newReply().Success("ok").Failure("No se pudo conectar con el servidor").Write(w)

	var n toast
	if err := json.Unmarshal(triggers(t, w)[eventNotify], &n); err != nil {
		t.Fatal(err)
	}
	if n.Type != "error" || n.Duration != failureToastMs || n.Message != "No se pudo conectar con el servidor" {
		t.Errorf("toast = %+v", n)
	}
	if _, ok := triggers(t, w)[eventFormReset]; ok {
		t.Error("a failed change must not reset the forms")
	}
}

func TestReply_Redirect(t *testing.T) {
	w := httptest.NewRecorder()

	newReply().Redirect("/").Write(w)

	if got := w.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect = %q, want %q", got, "/")
	}
	if w.Header().Get("HX-Trigger") != "" {
		t.Error("no events expected")
	}
	if w.Body.Len() != 0 || w.Header().Get("Content-Type") != "" {
		t.Error("a redirect carries no body")
	}
}

func TestErrorReplies(t *testing.T) {
	tests := []struct {
		name       string
		reply      *reply
		wantStatus int
		wantText   string
	}{
		{"bad request", badRequest("Identificador inválido"), http.StatusBadRequest, "Identificador inválido"},
		{"not found", notFound("Categoría no encontrada"), http.StatusNotFound, "Categoría no encontrada"},
		{"server error", serverError("Error al mostrar la página"), http.StatusInternalServerError, "Error al mostrar la página"},
		{"escaped", badRequest("<script>x</script>"), http.StatusBadRequest, "&lt;script&gt;x&lt;/script&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.reply.Write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			want := `<div class="error" role="alert">` + tt.wantText + `</div>`
			if w.Body.String() != want {
				t.Errorf("Body = %q, want %q", w.Body.String(), want)
			}
			if strings.Contains(w.Body.String(), "<script>") {
				t.Error("message was not escaped")
			}
		})
	}
}
