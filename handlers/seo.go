package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	"mykitchen_backend/models"
	"mykitchen_backend/seo"
)

// basePage is the file recipe pages are rendered from.
const basePage = "index.html"

type seoResponse struct {
	MetaTags       seo.MetaTags       `json:"metaTags"`
	StructuredData seo.StructuredData `json:"structuredData"`
	Recipe         models.Summary     `json:"recipe"`
}

// RecipePage serves the base page with the recipe's meta tags and
// structured data injected. Failures are answered in plain text.
func (h *Handler) RecipePage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	recipe, err := h.recipes.Recipe(r.Context(), id)
	if err != nil {
		h.writeTextError(w, r, "Failed to load recipe page", err)
		return
	}

	data, err := h.seo.StructuredData(recipe)
	if err != nil {
		h.writeTextError(w, r, "Failed to build structured data", err)
		return
	}

	base, err := fs.ReadFile(h.pages, basePage)
	if err != nil {
		h.writeTextError(w, r, "Failed to read base page", err)
		return
	}

	page, err := seo.Render(base, h.seo.MetaTags(recipe), data)
	if err != nil {
		h.writeTextError(w, r, "Failed to render recipe page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// RecipeSEO returns the SEO payload of a recipe as JSON.
func (h *Handler) RecipeSEO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	recipe, err := h.recipes.Recipe(r.Context(), id)
	if err != nil {
		h.writeJSONError(w, r, "Failed to load recipe SEO data", err)
		return
	}

	data, err := h.seo.StructuredData(recipe)
	if err != nil {
		h.writeJSONError(w, r, "Failed to build structured data", err)
		return
	}

	h.writeJSON(w, http.StatusOK, seoResponse{
		MetaTags:       h.seo.MetaTags(recipe),
		StructuredData: data,
		Recipe:         recipe.Summary(),
	})
}

// Sitemap serves sitemap.xml.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.seo.Sitemap()
	if err != nil {
		h.writeTextError(w, r, "Failed to build sitemap", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(body)
}

// Robots serves robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.seo.Robots()))
}
