package handlers

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"mykitchen_backend/apperr"
	"mykitchen_backend/favorites"
	"mykitchen_backend/middleware"
	"mykitchen_backend/models"
	"mykitchen_backend/seo"
)

// RecipeGateway is the subset of the MealDB client the handlers use.
type RecipeGateway interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	ListAll(ctx context.Context) (json.RawMessage, error)
	FilterByIngredient(ctx context.Context, ingredients string) (json.RawMessage, error)
	Lookup(ctx context.Context, id string) (json.RawMessage, error)
	Recipe(ctx context.Context, id string) (models.Recipe, error)
	Image(ctx context.Context, imageURL string) ([]byte, string, error)
}

// Handler serves every endpoint of the recipe backend.
type Handler struct {
	recipes   RecipeGateway
	favorites favorites.Store
	seo       *seo.Generator
	pages     fs.FS
	logger    *zap.Logger
}

// New returns a Handler. pages must contain index.html, the page recipe
// pages are rendered from.
func New(recipes RecipeGateway, store favorites.Store, gen *seo.Generator, pages fs.FS, logger *zap.Logger) *Handler {
	return &Handler{
		recipes:   recipes,
		favorites: store,
		seo:       gen,
		pages:     pages,
		logger:    logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeRaw relays an upstream JSON body unchanged.
func (h *Handler) writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSONError logs err and answers with its status and a caller-safe message.
func (h *Handler) writeJSONError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	appErr := apperr.From(err)
	h.logFailure(r, msg, appErr)
	h.writeJSON(w, appErr.StatusCode(), errorResponse{Error: publicMessage(appErr)})
}

// writeTextError is writeJSONError for plain-text endpoints.
func (h *Handler) writeTextError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	appErr := apperr.From(err)
	h.logFailure(r, msg, appErr)
	http.Error(w, publicMessage(appErr), appErr.StatusCode())
}

func (h *Handler) logFailure(r *http.Request, msg string, err *apperr.Error) {
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("code", string(err.Code)),
		zap.Error(err),
	}
	if err.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
		return
	}
	h.logger.Info(msg, fields...)
}

// publicMessage hides internal causes behind a generic message.
func publicMessage(err *apperr.Error) string {
	if err.StatusCode() >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Message
}
