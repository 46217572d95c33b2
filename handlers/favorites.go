package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mykitchen_backend/apperr"
	"mykitchen_backend/favorites"
	"mykitchen_backend/models"
)

const maxFavoriteBytes = 1 << 20

type addFavoriteRequest struct {
	Meal json.RawMessage `json:"meal"`
}

type favoritesResponse struct {
	OK        bool              `json:"ok"`
	Favorites []models.Favorite `json:"favorites,omitempty"`
}

// ListFavorites returns the saved meals in the order they were added.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := h.favorites.List(r.Context())
	if err != nil {
		h.writeJSONError(w, r, "Failed to list favorites", err)
		return
	}
	if list == nil {
		list = []models.Favorite{}
	}

	h.writeJSON(w, http.StatusOK, list)
}

// AddFavorite saves the posted meal unless one with the same idMeal exists.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFavoriteBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, r, "Invalid favorite body", apperr.Wrap(err, apperr.CodeBadRequest, "meal required"))
		return
	}

	list, err := h.favorites.Add(r.Context(), models.NewFavorite(req.Meal))
	if errors.Is(err, favorites.ErrMissingID) {
		h.writeJSONError(w, r, "Favorite rejected", apperr.Wrap(err, apperr.CodeBadRequest, "meal required"))
		return
	}
	if err != nil {
		h.writeJSONError(w, r, "Failed to add favorite", err)
		return
	}

	h.writeJSON(w, http.StatusOK, favoritesResponse{OK: true, Favorites: list})
}

// RemoveFavorite deletes the favorite with the id path variable.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.favorites.Remove(r.Context(), id); err != nil {
		h.writeJSONError(w, r, "Failed to remove favorite", err)
		return
	}

	h.writeJSON(w, http.StatusOK, favoritesResponse{OK: true})
}
