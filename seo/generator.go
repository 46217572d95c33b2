// Package seo builds the search-engine facing parts of recipe pages: meta
// tags, schema.org structured data, the sitemap and robots.txt.
package seo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"mykitchen_backend/models"
)

// ErrMissingInstructions is returned when a recipe carries no instructions field.
var ErrMissingInstructions = errors.New("recipe has no instructions")

// DefaultCategories are the category pages listed in the sitemap.
var DefaultCategories = []string{"Seafood", "Chicken", "Beef", "Vegetarian", "Dessert"}

// Site describes the public site the pages are generated for.
type Site struct {
	URL        string
	Name       string
	Author     string
	Categories []string
}

// RandFunc returns a uniform integer in [0, n).
type RandFunc func(n int) int

// Generator derives SEO data from recipes. It is safe for concurrent use
// as long as its RandFunc and clock are.
type Generator struct {
	site Site
	rand RandFunc
	now  func() time.Time
}

// NewGenerator returns a generator for site. Nil rnd and now default to
// math/rand/v2 and time.Now.
func NewGenerator(site Site, rnd RandFunc, now func() time.Time) *Generator {
	site.URL = strings.TrimRight(site.URL, "/")
	if site.Name == "" {
		site.Name = "MyKitchen"
	}
	if site.Author == "" {
		site.Author = site.Name + " Team"
	}
	if len(site.Categories) == 0 {
		site.Categories = DefaultCategories
	}
	if rnd == nil {
		rnd = rand.IntN
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{site: site, rand: rnd, now: now}
}

// Site returns the site the generator was built for.
func (g *Generator) Site() Site {
	return g.site
}

// RecipeURL is the canonical page URL of a recipe.
func (g *Generator) RecipeURL(id string) string {
	return fmt.Sprintf("%s/recipe/%s", g.site.URL, id)
}

// MetaTags holds the per-recipe head tags.
type MetaTags struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	Canonical          string `json:"canonical"`
	OGType             string `json:"ogType"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	OGURL              string `json:"ogUrl"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage"`
}

// MetaTags builds the head tags for r. Missing recipe fields render as empty text.
func (g *Generator) MetaTags(r models.Recipe) MetaTags {
	name := g.site.Name
	howTo := fmt.Sprintf("Learn how to make %s with step-by-step instructions.", r.Name)
	origin := fmt.Sprintf("%s recipe from %s cuisine.", r.Category, r.Area)
	pageURL := g.RecipeURL(r.ID)

	return MetaTags{
		Title:              fmt.Sprintf("%s Recipe | %s Recipe Finder", r.Name, name),
		Description:        fmt.Sprintf("%s %s Free cooking recipe on %s.", howTo, origin, name),
		Keywords:           fmt.Sprintf("%s, %s, %s cuisine, recipe, cooking, ingredients", r.Name, r.Category, r.Area),
		Canonical:          pageURL,
		OGType:             "article",
		OGTitle:            fmt.Sprintf("%s Recipe | %s", r.Name, name),
		OGDescription:      howTo + " " + origin,
		OGImage:            r.Thumbnail,
		OGURL:              pageURL,
		TwitterCard:        "summary_large_image",
		TwitterTitle:       fmt.Sprintf("%s Recipe | %s", r.Name, name),
		TwitterDescription: howTo,
		TwitterImage:       r.Thumbnail,
	}
}

type Author struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type HowToStep struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type Nutrition struct {
	Type     string `json:"@type"`
	Calories string `json:"calories"`
}

type AggregateRating struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
	RatingCount int    `json:"ratingCount"`
}

// StructuredData is a schema.org Recipe object.
type StructuredData struct {
	Context            string          `json:"@context"`
	Type               string          `json:"@type"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Image              []string        `json:"image"`
	Author             Author          `json:"author"`
	DatePublished      string          `json:"datePublished"`
	PrepTime           string          `json:"prepTime"`
	CookTime           string          `json:"cookTime"`
	TotalTime          string          `json:"totalTime"`
	RecipeCategory     string          `json:"recipeCategory"`
	RecipeCuisine      string          `json:"recipeCuisine"`
	RecipeYield        string          `json:"recipeYield"`
	Keywords           string          `json:"keywords"`
	RecipeIngredient   []string        `json:"recipeIngredient"`
	RecipeInstructions []HowToStep     `json:"recipeInstructions"`
	Nutrition          Nutrition       `json:"nutrition"`
	AggregateRating    AggregateRating `json:"aggregateRating"`
	URL                string          `json:"url"`
}

const (
	minRatingCount  = 50
	ratingCountSpan = 100
	isoMillis       = "2006-01-02T15:04:05.000Z07:00"
)

// StructuredData builds the schema.org object for r. The rating count is
// drawn fresh on every call.
func (g *Generator) StructuredData(r models.Recipe) (StructuredData, error) {
	if r.Instructions == nil {
		return StructuredData{}, fmt.Errorf("structured data for %q: %w", r.ID, ErrMissingInstructions)
	}

	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		ingredients = append(ingredients, fmt.Sprintf("%s - %s", ing.Name, ing.Measure))
	}

	steps := SplitInstructions(*r.Instructions)
	howTo := make([]HowToStep, 0, len(steps))
	for i, step := range steps {
		text := strings.TrimSpace(step)
		if !strings.HasSuffix(text, ".") {
			text += "."
		}
		howTo = append(howTo, HowToStep{
			Type: "HowToStep",
			Name: fmt.Sprintf("Step %d", i+1),
			Text: text,
		})
	}

	url := r.Source
	if url == "" {
		url = g.RecipeURL(r.ID)
	}

	return StructuredData{
		Context:            "https://schema.org",
		Type:               "Recipe",
		Name:               r.Name,
		Description:        fmt.Sprintf("Delicious %s recipe from %s cuisine. %s dish with step-by-step cooking instructions.", r.Name, r.Area, r.Category),
		Image:              []string{r.Thumbnail},
		Author:             Author{Type: "Organization", Name: g.site.Author},
		DatePublished:      g.now().UTC().Format(isoMillis),
		PrepTime:           "PT30M",
		CookTime:           "PT45M",
		TotalTime:          "PT75M",
		RecipeCategory:     r.Category,
		RecipeCuisine:      r.Area,
		RecipeYield:        "4 servings",
		Keywords:           fmt.Sprintf("%s, %s, %s cuisine, recipe, cooking", r.Name, r.Category, r.Area),
		RecipeIngredient:   ingredients,
		RecipeInstructions: howTo,
		Nutrition:          Nutrition{Type: "NutritionInformation", Calories: "350 calories"},
		AggregateRating: AggregateRating{
			Type:        "AggregateRating",
			RatingValue: "4.5",
			RatingCount: minRatingCount + g.rand(ratingCountSpan),
		},
		URL: url,
	}, nil
}

// SplitInstructions splits free text into steps on ". ", dropping blank
// pieces. The final step keeps its trailing period.
func SplitInstructions(text string) []string {
	var steps []string
	for _, s := range strings.Split(text, ". ") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}
