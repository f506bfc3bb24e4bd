package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"eventpass/internal/domain"
	"eventpass/pkg/pass"
)

type handler struct {
	passes PassVerifier
	db     Pinger
}

type passResponse struct {
	UserID       int64     `json:"userId"`
	EventID      int64     `json:"eventId"`
	EventTitle   string    `json:"eventTitle"`
	RegisteredAt time.Time `json:"registeredAt"`
	Status       string    `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to statuses; unexpected ones are logged under
// op.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMalformedToken):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoRegistration), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(op)
	}
	writeJSON(w, status, errorResponse{Error: http.StatusText(status), Code: domain.Code(err)})
}

// GET /passes/{token}
func (h *handler) verifyPass(w http.ResponseWriter, r *http.Request) {
	p, err := h.passes.Verify(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, "verify pass", err)
		return
	}
	writeJSON(w, http.StatusOK, passResponse{
		UserID:       p.Registration.UserID,
		EventID:      p.Registration.EventID,
		EventTitle:   p.Event.Title,
		RegisteredAt: p.Registration.RegisteredAt,
		Status:       p.Registration.Status,
	})
}

// GET /passes/{token}/qr.png
func (h *handler) passImage(w http.ResponseWriter, r *http.Request) {
	p, err := h.passes.Verify(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, "verify pass", err)
		return
	}
	png, err := pass.RenderPNG(p.Token, pass.DefaultImageSize)
	if err != nil {
		writeError(w, r, "render pass image", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(png)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check: database unreachable")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
