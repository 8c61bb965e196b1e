package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Defaults(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().Write(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("default status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Error("no triggers were added, HX-Trigger must be absent")
	}
	if rec.Body.Len() != 0 {
		t.Error("no body was set, response body must be empty")
	}
}

func TestHTMXResponseBuilder_ChartsRefreshTrigger(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().TriggerChartsRefresh("Food").BodyHTML("<div>ok</div>").Write(rec)

	var triggers map[string]map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if triggers["charts:refresh"]["category"] != "Food" {
		t.Errorf("trigger payload = %+v, want category Food", triggers["charts:refresh"])
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestHTMXResponseBuilder_Notifications(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().TriggerSuccessNotification("exported").Write(rec)

	var triggers map[string]map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	n := triggers["show-notification"]
	if n["type"] != "success" || n["message"] != "exported" {
		t.Errorf("notification payload = %+v", n)
	}
}

func TestHTMXResponseBuilder_MultipleTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerChartsRefresh("Clothing").
		TriggerSuccessNotification("done").
		Write(rec)

	var triggers map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if len(triggers) != 2 {
		t.Errorf("got %d triggers, want 2", len(triggers))
	}
}

func TestErrorResponse_EscapesHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	UnprocessableEntityError(`<script>alert("x")</script>`).Write(rec)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("message must be HTML-escaped")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"trims whitespace", "  Electronics  ", "Electronics"},
		{"strips control characters", "Food\x00\x07", "Food"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.in); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
