package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/http/response"
	"github.com/davidbz/quill/internal/observability"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	generation  *domain.GenerationService
	credentials domain.CredentialStore
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(generation *domain.GenerationService, credentials domain.CredentialStore) *Handler {
	return &Handler{
		generation:  generation,
		credentials: credentials,
	}
}

// GenerateResponse is the success body of the generate route.
type GenerateResponse struct {
	Text string `json:"text"`
}

// CredentialStatusResponse reports whether a provider key is stored.
type CredentialStatusResponse struct {
	Configured bool `json:"configured"`
}

// SetCredentialRequest carries a new provider key.
type SetCredentialRequest struct {
	APIKey string `json:"apiKey"`
}

// HandleGenerate forwards one generation request to the provider.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req domain.GenerationRequest
	if err := decodeBody(w, r, &req); err != nil {
		logger.Warn("invalid generate body", observability.Error(err))
		response.Error(ctx, w, domain.NewInvalidRequest("The request body is not a valid generation request."))
		return
	}

	result, err := h.generation.Generate(ctx, &req)
	if err != nil {
		response.Error(ctx, w, err)
		return
	}

	response.JSON(ctx, w, http.StatusOK, GenerateResponse{Text: result.Text})
}

// HandleCredentialStatus reports whether a provider key is configured.
// The key itself is never returned.
func (h *Handler) HandleCredentialStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := h.credentials.APIKey(ctx)
	if err != nil {
		observability.FromContext(ctx).Error("failed to read credential", observability.Error(err))
		response.Error(ctx, w, domain.NewInternal("The API key could not be read.", err))
		return
	}

	configured := key != ""
	observability.FromContext(ctx).Debug("credential status read", observability.Bool("configured", configured))
	response.JSON(ctx, w, http.StatusOK, CredentialStatusResponse{Configured: configured})
}

// HandleSetCredential stores a new provider key.
func (h *Handler) HandleSetCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req SetCredentialRequest
	if err := decodeBody(w, r, &req); err != nil {
		logger.Warn("invalid credential body", observability.Error(err))
		response.Error(ctx, w, domain.NewInvalidRequest("The request body is not valid JSON."))
		return
	}

	key := domain.NormalizeAPIKey(req.APIKey)
	if key == "" {
		response.Error(ctx, w, domain.NewInvalidRequest("An API key is required."))
		return
	}

	if err := h.credentials.SetAPIKey(ctx, key); err != nil {
		logger.Error("failed to store credential", observability.Error(err))
		response.Error(ctx, w, domain.NewInternal("The API key could not be saved.", err))
		return
	}

	logger.Info("credential stored")
	w.WriteHeader(http.StatusNoContent)
}

// HandleClearCredential removes the provider key.
func (h *Handler) HandleClearCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if err := h.credentials.ClearAPIKey(ctx); err != nil {
		logger.Error("failed to clear credential", observability.Error(err))
		response.Error(ctx, w, domain.NewInternal("The API key could not be removed.", err))
		return
	}

	logger.Info("credential cleared")
	w.WriteHeader(http.StatusNoContent)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return decoder.Decode(v)
}
