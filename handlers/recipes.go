package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SearchRecipes relays a MealDB search. The ingredient filter i takes
// precedence over the name query q; with neither, every meal is listed.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		body []byte
		err  error
	)
	switch i, q := query.Get("i"), query.Get("q"); {
	case i != "":
		body, err = h.recipes.FilterByIngredient(ctx, i)
	case q != "":
		body, err = h.recipes.Search(ctx, q)
	default:
		body, err = h.recipes.ListAll(ctx)
	}
	if err != nil {
		h.writeJSONError(w, r, "Failed to search recipes", err)
		return
	}

	h.writeRaw(w, body)
}

// GetMeal relays the MealDB lookup for the id path variable.
func (h *Handler) GetMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	body, err := h.recipes.Lookup(r.Context(), id)
	if err != nil {
		h.writeJSONError(w, r, "Failed to look up meal", err)
		return
	}

	h.writeRaw(w, body)
}
