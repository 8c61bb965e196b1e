package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"salesdash/internal/core"
)

// handleIndex renders the full dashboard page with the default category
// selected and the sales table laid out month by month.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	table, err := s.readTable(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Table read error", "error", err)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}

	view, err := core.ComputeView(table, core.DefaultCategory)
	if err != nil {
		slog.ErrorContext(r.Context(), "Initial view error", "error", err, "category", core.DefaultCategory)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}

	type monthRow struct {
		Month  string
		Values []string
	}
	data := struct {
		Categories []string
		Selected   string
		Rows       []monthRow
		TotalCard  struct {
			Total string
			OK    bool
		}
	}{
		Categories: table.CategoryNames(),
		Selected:   string(core.DefaultCategory),
	}
	data.TotalCard.Total = view.Total
	data.TotalCard.OK = true
	for i, m := range table.Months {
		row := monthRow{Month: m}
		for _, c := range table.Categories {
			row.Values = append(row.Values, strconv.FormatInt(table.Values[c][i], 10))
		}
		data.Rows = append(data.Rows, row)
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleViewPartial re-renders the total slot for the selected category.
// A valid selection also triggers a client-side chart refresh; an invalid
// one leaves the charts untouched and routes a warning to the total slot.
func (s *Server) handleViewPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	category := parseCategory(r)

	table, err := s.readTable(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Table read error", "error", err, "category", category)
		s.writeTotalSlot(w, core.ViewUpdate{
			Total: fmt.Sprintf("❌ An error occurred while updating: %v", err),
		}, category)
		return
	}

	upd := core.BuildViewUpdate(table, category)
	if !upd.OK {
		slog.WarnContext(r.Context(), "View update kept charts", "category", category, "message", upd.Total)
	}
	s.writeTotalSlot(w, upd, category)
}

// writeTotalSlot renders the total partial. The charts:refresh trigger is
// attached only for a successful update so the client keeps stale charts
// in every other case.
func (s *Server) writeTotalSlot(w http.ResponseWriter, upd core.ViewUpdate, category core.Category) {
	var buf bytes.Buffer
	data := struct {
		Total string
		OK    bool
	}{Total: upd.Total, OK: upd.OK}

	if s.templates == nil || s.templates.ExecuteTemplate(&buf, "total_card.html", data) != nil {
		buf.Reset()
		buf.WriteString(`<div id="total-card" class="total-card">` + htmlEscape(upd.Total) + `</div>`)
	}

	builder := NewHTMXResponse().BodyHTML(buf.String())
	if upd.OK {
		builder.TriggerChartsRefresh(string(category))
	}
	builder.Write(w)
}

// chartDataResponse is the JSON shape consumed by the chart renderer.
type chartDataResponse struct {
	Bar   core.ChartSeries `json:"bar"`
	Line  core.ChartSeries `json:"line"`
	Total string           `json:"total"`
}

// handleChartData serves the derived chart series for a category as JSON.
func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	category := parseCategory(r)
	view, err := s.getView(r.Context(), category)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrUnknownCategory) {
			status = http.StatusUnprocessableEntity
		} else {
			slog.ErrorContext(r.Context(), "Chart data error", "error", err, "category", category)
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chartDataResponse{
		Bar:   view.Bar,
		Line:  view.Line,
		Total: view.Total,
	})
}

// handleExport writes the sales table to the configured CSV file and
// renders the outcome message. Export problems surface in the message
// partial, not as HTTP errors.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	builder := NewHTMXResponse()

	table, err := s.readTable(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Table read error before export", "error", err)
		s.writeExportStatus(w, builder, fmt.Sprintf("❌ Failed to export data: %v", err), false)
		return
	}

	res := s.exports.Export(r.Context(), table)
	if res.OK {
		builder.TriggerSuccessNotification(res.Message)
	}
	s.writeExportStatus(w, builder, res.Message, res.OK)
}

func (s *Server) writeExportStatus(w http.ResponseWriter, builder *HTMXResponseBuilder, message string, ok bool) {
	var buf bytes.Buffer
	data := struct {
		Message string
		OK      bool
	}{Message: message, OK: ok}

	if s.templates == nil || s.templates.ExecuteTemplate(&buf, "export_status.html", data) != nil {
		buf.Reset()
		buf.WriteString(`<div id="export-status" class="export-status">` + htmlEscape(message) + `</div>`)
	}

	builder.BodyHTML(buf.String()).Write(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}
