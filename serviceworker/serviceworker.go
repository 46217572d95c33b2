// Package serviceworker renders the browser cache policy script served at /sw.js.
package serviceworker

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"text/template"
)

//go:embed sw.js.tmpl
var source string

var script = template.Must(template.New("sw.js").Parse(source))

// DefaultStaticURLs are precached on install.
var DefaultStaticURLs = []string{"/", "/index.html", "/sitemap.xml", "/robots.txt"}

// DefaultAPIURLs are MealDB lists the frontend loads on every visit.
var DefaultAPIURLs = []string{
	"https://www.themealdb.com/api/json/v1/1/categories.php",
	"https://www.themealdb.com/api/json/v1/1/list.php?c=list",
	"https://www.themealdb.com/api/json/v1/1/list.php?a=list",
}

// Config parameterises the script.
type Config struct {
	CacheName  string
	SiteName   string
	StaticURLs []string
	APIURLs    []string
	// APIMatch selects the requests served network-first.
	APIMatch string
}

// Render executes the script template. The output is rendered once and
// served from memory.
func Render(cfg Config) ([]byte, error) {
	if cfg.CacheName == "" {
		return nil, fmt.Errorf("service worker: cache name is required")
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "MyKitchen"
	}
	if cfg.StaticURLs == nil {
		cfg.StaticURLs = DefaultStaticURLs
	}
	if cfg.APIURLs == nil {
		cfg.APIURLs = DefaultAPIURLs
	}
	if cfg.APIMatch == "" {
		cfg.APIMatch = "themealdb.com/api"
	}

	var buf bytes.Buffer
	if err := script.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render service worker: %w", err)
	}
	return buf.Bytes(), nil
}

// Handler serves a rendered script. Browsers must revalidate it on every
// navigation so a new cache name takes effect on the next activation.
func Handler(body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	})
}
