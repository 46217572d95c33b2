package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxIngredients is the number of ingredient slots a MealDB record carries.
const MaxIngredients = 20

// Ingredient is one filled ingredient slot of a recipe.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Recipe is a single meal record as served by TheMealDB.
//
// Instructions is nil when the upstream record has no strInstructions field
// (or it is null), which callers must treat differently from an empty text.
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions *string
	Thumbnail    string
	Source       string
	Tags         string
	YouTube      string
	Ingredients  []Ingredient
}

// UnmarshalJSON decodes the flat MealDB layout, folding the numbered
// strIngredientN/strMeasureN slots into Ingredients in slot order.
// Slots whose ingredient is blank are dropped.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Recipe{
		ID:        stringField(fields, "idMeal"),
		Name:      stringField(fields, "strMeal"),
		Category:  stringField(fields, "strCategory"),
		Area:      stringField(fields, "strArea"),
		Thumbnail: stringField(fields, "strMealThumb"),
		Source:    stringField(fields, "strSource"),
		Tags:      stringField(fields, "strTags"),
		YouTube:   stringField(fields, "strYoutube"),
	}

	if v, ok := fields["strInstructions"].(string); ok {
		r.Instructions = &v
	}

	r.Ingredients = []Ingredient{}
	for i := 1; i <= MaxIngredients; i++ {
		name := stringField(fields, fmt.Sprintf("strIngredient%d", i))
		if strings.TrimSpace(name) == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, Ingredient{
			Name:    name,
			Measure: stringField(fields, fmt.Sprintf("strMeasure%d", i)),
		})
	}

	return nil
}

// Summary is the short recipe view returned next to SEO data.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Area     string `json:"area"`
	Image    string `json:"image"`
}

// Summary returns the short view of the recipe.
func (r Recipe) Summary() Summary {
	return Summary{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Area:     r.Area,
		Image:    r.Thumbnail,
	}
}

// stringField reads a string-ish value; numbers are formatted, anything else is empty.
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
