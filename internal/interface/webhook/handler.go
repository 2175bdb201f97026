package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"farecast-service/internal/domain/entity"
	"farecast-service/internal/usecase"
	"farecast-service/pkg/logger"
	"farecast-service/pkg/metrics"
)

const (
	// InteractionsPath is where the platform delivers interactions
	InteractionsPath = "/interactions"

	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"

	maxBodyBytes = 1 << 20
)

// Handler authenticates and answers interaction webhooks
type Handler struct {
	verifier   *Verifier
	dispatcher *usecase.InteractionDispatcher
	echoVerify bool
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewHandler creates the interactions endpoint. In echo mode the raw body is
// written back unchanged, with 401 when the signature fails, and no command
// is dispatched. Echo mode is for platform onboarding only.
func NewHandler(verifier *Verifier, dispatcher *usecase.InteractionDispatcher, echoVerify bool, metrics *metrics.Metrics, logger logger.Logger) *Handler {
	return &Handler{
		verifier:   verifier,
		dispatcher: dispatcher,
		echoVerify: echoVerify,
		metrics:    metrics,
		logger:     logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		writeText(w, http.StatusOK, "ok")
		return
	default:
		h.count("method_not_allowed")
		w.Header().Set("Allow", "GET, HEAD, OPTIONS, POST")
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.verifier.Configured() {
		h.logger.Error("Interaction received but DISCORD_PUBLIC_KEY is not set")
		h.count("misconfigured")
		writeText(w, http.StatusInternalServerError, "server misconfigured")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.count("bad_request")
		writeText(w, http.StatusBadRequest, "bad request")
		return
	}

	if err := h.verifier.Verify(r.Header.Get(headerSignature), r.Header.Get(headerTimestamp), body); err != nil {
		h.logger.Warn("Rejected interaction", "remoteAddr", r.RemoteAddr, "error", err)
		h.count("bad_signature")
		if h.echoVerify {
			writeRaw(w, http.StatusUnauthorized, body)
			return
		}
		writeText(w, http.StatusUnauthorized, "bad signature")
		return
	}

	if h.echoVerify {
		h.count("echo")
		writeRaw(w, http.StatusOK, body)
		return
	}

	if !json.Valid(body) {
		h.count("bad_request")
		writeText(w, http.StatusBadRequest, "bad request")
		return
	}

	// Well-formed JSON that is not an interaction object is an unknown shape.
	var resp *entity.InteractionResponse
	var in entity.Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		h.logger.Debug("Ignoring unrecognized interaction shape", "error", err)
	} else {
		resp = h.dispatcher.Dispatch(r.Context(), &in)
	}
	if resp == nil {
		h.count("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("Failed to encode interaction response", "error", err)
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.count("answered")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) count(result string) {
	if h.metrics != nil {
		h.metrics.WebhookRequests.WithLabelValues(result).Inc()
	}
}

// Liveness answers 200 ok on any path and method
func Liveness(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}
