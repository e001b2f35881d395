package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"calckit/internal/calcerr"
	"calckit/internal/export"
	"calckit/internal/finance"
	"calckit/internal/prefs"
	"calckit/internal/registry"
	"calckit/internal/state"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	registry      *registry.Registry
	states        state.Store
	prefs         *prefs.Store
	logger        *zap.Logger
	maxStateBytes int64
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /api/v1/calculators", h.listCalculators)
	mux.HandleFunc("POST /api/v1/calculators/{slug}", h.runCalculator)
	mux.HandleFunc("GET /api/v1/state/{slug}", h.getState)
	mux.HandleFunc("PUT /api/v1/state/{slug}", h.putState)
	mux.HandleFunc("DELETE /api/v1/state/{slug}", h.deleteState)
	mux.HandleFunc("GET /api/v1/prefs/currency", h.getCurrency)
	mux.HandleFunc("PUT /api/v1/prefs/currency", h.putCurrency)
	mux.HandleFunc("POST /api/v1/export/amortization", h.exportAmortization)
	return mux
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}

func (h *handler) runCalculator(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	result, err := h.registry.Run(slug, body)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrUnknownCalculator):
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", slug))
		case calcerr.IsInvalid(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("calculator run failed",
				zap.String("slug", slug),
				zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.knownSlug(w, r)
	if !ok {
		return
	}

	data, found, err := h.states.Load(r.Context(), slug)
	if err != nil {
		h.logger.Error("state load failed", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no saved state for %q", slug))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *handler) putState(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.knownSlug(w, r)
	if !ok {
		return
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "state must be valid JSON")
		return
	}

	if err := h.states.Save(r.Context(), slug, body); err != nil {
		h.logger.Error("state save failed", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteState(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.knownSlug(w, r)
	if !ok {
		return
	}

	if err := h.states.Delete(r.Context(), slug); err != nil {
		h.logger.Error("state delete failed", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getCurrency(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"currency": string(h.prefs.Current())})
}

func (h *handler) putCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency, err := prefs.ParseCurrency(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.prefs.Set(currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"currency": string(currency)})
}

type amortizationRequest struct {
	Title         string  `json:"title"`
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TermYears     int     `json:"term_years"`
}

func (h *handler) exportAmortization(w http.ResponseWriter, r *http.Request) {
	var req amortizationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxStateBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TermYears > finance.MaxLoopYears {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("term exceeds %d years", finance.MaxLoopYears))
		return
	}

	schedule, err := finance.Amortize(req.Principal, req.AnnualRatePct/100/12, req.TermYears*12)
	if err != nil {
		if calcerr.IsInvalid(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("amortization failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	title := req.Title
	if title == "" {
		title = "Amortization Schedule"
	}
	f, err := export.AmortizationWorkbook(export.AmortizationMeta{
		Title:         title,
		Currency:      h.prefs.Current(),
		Principal:     req.Principal,
		AnnualRatePct: req.AnnualRatePct,
		TermYears:     req.TermYears,
	}, schedule)
	if err != nil {
		h.logger.Error("workbook build failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="amortization.xlsx"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("workbook write failed", zap.Error(err))
	}
}

// knownSlug validates the {slug} path segment against the catalog.
func (h *handler) knownSlug(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := r.PathValue("slug")
	if _, ok := h.registry.Lookup(slug); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", slug))
		return "", false
	}
	return slug, true
}

// readBody reads the request body under the configured size cap. An
// empty body comes back as nil.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxStateBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("body exceeds %d bytes", h.maxStateBytes))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		return nil, true
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
