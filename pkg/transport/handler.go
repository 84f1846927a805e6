package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"unicode/utf8"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
	"github.com/devtayyabsajjad/groqchat/pkg/config"
	"github.com/devtayyabsajjad/groqchat/pkg/debug"
	"github.com/devtayyabsajjad/groqchat/pkg/models"
	"github.com/devtayyabsajjad/groqchat/pkg/observability"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
)

// Version is the service version reported by the root endpoint.
const Version = "1.0.0"

// maxBodySize bounds the POST /chat request body. Far above the message
// length limit, so legitimate requests never hit it.
const maxBodySize int64 = 1 << 20 // 1 MB

// Handler dispatches the groqchat API routes. All fields are read-only
// after construction, so a single Handler serves concurrent requests
// without locking.
type Handler struct {
	registry *models.Registry
	client   provider.CompletionClient // nil when the gateway failed to initialize
	limits   api.ValidationLimits
	logger   *slog.Logger
}

// NewHandler creates a Handler wired to the given registry and
// completion client. The client may be nil; /health then reports
// disconnected and /chat answers 503.
func NewHandler(settings *config.Settings, registry *models.Registry, client provider.CompletionClient, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry: registry,
		client:   client,
		limits: api.ValidationLimits{
			MaxMessageLength:   settings.MaxMessageLength,
			DefaultModel:       settings.DefaultModel,
			DefaultMaxTokens:   settings.DefaultMaxTokens,
			DefaultTemperature: settings.DefaultTemperature,
		},
		logger: logger,
	}
}

// Routes returns the route mux. Middleware is applied by the caller.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /models", h.handleModels)
	mux.HandleFunc("POST /chat", h.handleChat)
	return mux
}

// handleRoot handles GET /.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "groqchat is running!",
		"status":  "healthy",
		"version": Version,
	})
}

// handleHealth handles GET /health. The service is healthy when the
// completion client was initialized at startup.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":                "unhealthy",
			"provider_connectivity": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":                "healthy",
		"provider_connectivity": "connected",
	})
}

// handleModels handles GET /models. The list is static for the process
// lifetime.
func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.Descriptor{
		"models": h.registry.List(),
	})
}

// handleChat handles POST /chat: validate, forward to the provider,
// shape the response.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		// Parameters like charset are fine; only the media type matters.
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			WriteDetail(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var raw api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteDetail(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body too large (max %d bytes)", maxBodySize))
			return
		}
		WriteDetail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req, verr := api.ValidateChatRequest(&raw, h.limits, h.registry)
	if verr != nil {
		observability.ValidationFailuresTotal.WithLabelValues(verr.Field, string(verr.Reason)).Inc()
		debug.Log("validation", "chat request rejected", "field", verr.Field, "reason", verr.Reason)
		WriteError(w, verr)
		return
	}

	// Checked after validation so malformed input still gets a 400 even
	// when the gateway never initialized.
	if h.client == nil {
		WriteDetail(w, http.StatusServiceUnavailable, "Groq service is not available")
		return
	}

	debug.Log("transport", "dispatching chat request",
		"model", req.Model,
		"max_tokens", *req.MaxTokens,
		"temperature", *req.Temperature,
		"message", debug.Truncate(req.Message, 120),
	)

	resp, err := h.client.Complete(r.Context(), req)
	if err != nil {
		h.logger.Error("completion failed",
			"model", req.Model,
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		WriteError(w, err)
		return
	}

	h.logger.Info("chat interaction",
		"model", resp.ModelUsed,
		"message_length", utf8.RuneCountInString(req.Message),
		"reply_length", utf8.RuneCountInString(resp.Reply),
		"tokens_used", resp.TokensUsed,
		"request_id", RequestIDFromContext(r.Context()),
	)

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
