package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Register mounts every endpoint on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/recipe/{id}", h.RecipePage).Methods(http.MethodGet)
	r.HandleFunc("/sitemap.xml", h.Sitemap).Methods(http.MethodGet)
	r.HandleFunc("/robots.txt", h.Robots).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/seo/recipe/{id}", h.RecipeSEO).Methods(http.MethodGet)
	api.HandleFunc("/recipes/search", h.SearchRecipes).Methods(http.MethodGet)
	api.HandleFunc("/recipes/meal/{id}", h.GetMeal).Methods(http.MethodGet)
	api.HandleFunc("/recipes/meal/{id}/thumbnail", h.Thumbnail).Methods(http.MethodGet)
	api.HandleFunc("/favorites", h.ListFavorites).Methods(http.MethodGet)
	api.HandleFunc("/favorites", h.AddFavorite).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{id}", h.RemoveFavorite).Methods(http.MethodDelete)
}
