package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the home page and one page per category, all last
// modified today.
func (g *Generator) Sitemap() ([]byte, error) {
	today := g.now().UTC().Format("2006-01-02")

	set := urlSet{Xmlns: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{
		Loc:        g.site.URL + "/",
		LastMod:    today,
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, category := range g.site.Categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/recipes/%s", g.site.URL, strings.ToLower(category)),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots returns the robots.txt body.
func (g *Generator) Robots() string {
	return strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
		"Disallow: /admin/",
		"",
		"Sitemap: " + g.site.URL + "/sitemap.xml",
	}, "\n")
}
