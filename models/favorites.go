package models

import "encoding/json"

// Favorite is a saved meal. Meal holds the object exactly as the client posted it.
type Favorite struct {
	ID   string
	Meal json.RawMessage
}

// NewFavorite builds a Favorite from a posted meal object. The ID is read
// from idMeal, which may be a non-empty string or a non-zero number; it is
// empty when absent or when meal is not an object. Strings are kept as
// posted, so a whitespace id is still an id.
func NewFavorite(meal json.RawMessage) Favorite {
	fav := Favorite{Meal: meal}

	var probe struct {
		IDMeal json.RawMessage `json:"idMeal"`
	}
	if err := json.Unmarshal(meal, &probe); err != nil || len(probe.IDMeal) == 0 {
		return fav
	}

	var id string
	if err := json.Unmarshal(probe.IDMeal, &id); err == nil {
		fav.ID = id
		return fav
	}

	var n json.Number
	if err := json.Unmarshal(probe.IDMeal, &n); err == nil {
		if f, err := n.Float64(); err == nil && f != 0 {
			fav.ID = n.String()
		}
	}

	return fav
}

// MarshalJSON writes the stored meal object unchanged.
func (f Favorite) MarshalJSON() ([]byte, error) {
	if len(f.Meal) == 0 {
		return []byte("null"), nil
	}
	return f.Meal, nil
}
