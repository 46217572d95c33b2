package seo

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MyKitchen Recipe Finder</title>
<meta name="description" content="Find recipes by ingredient">
<meta name="keywords" content="recipes">
<meta property="og:title" content="MyKitchen">
<meta property="og:description" content="Find recipes">
<meta property="og:image" content="/og.png">
<meta property="og:url" content="https://mykitchen.example/">
<meta name="twitter:title" content="MyKitchen">
</head>
<body><h1>MyKitchen</h1><title>not the head title</title></body>
</html>`

var ldJSON = regexp.MustCompile(`(?s)<script type="application/ld\+json" id="recipe-structured-data">(.*?)</script>`)

func renderSample(t *testing.T, base string) (string, MetaTags) {
	t.Helper()

	gen := NewGenerator(Site{URL: "https://mykitchen.example"}, func(int) int { return 7 }, nil)
	r := sampleRecipe()
	meta := gen.MetaTags(r)
	data, err := gen.StructuredData(r)
	require.NoError(t, err)

	out, err := Render([]byte(base), meta, data)
	require.NoError(t, err)
	return string(out), meta
}

func TestRenderReplacesHeadTags(t *testing.T) {
	out, meta := renderSample(t, basePage)

	assert.Contains(t, out, "<title>"+meta.Title+"</title>")
	assert.Contains(t, out, `<meta name="description" content="`+meta.Description+`"`)
	assert.Contains(t, out, `<meta name="keywords" content="`+meta.Keywords+`"`)
	assert.Contains(t, out, `<meta property="og:title" content="`+meta.OGTitle+`"`)
	assert.Contains(t, out, `<meta property="og:description" content="`+meta.OGDescription+`"`)
	assert.Contains(t, out, `<meta property="og:image" content="`+meta.OGImage+`"`)
	assert.Contains(t, out, `<meta property="og:url" content="`+meta.OGURL+`"`)
	assert.Contains(t, out, `<meta name="twitter:title" content="`+meta.TwitterTitle+`"`)
	assert.NotContains(t, out, "Find recipes by ingredient")
	assert.Contains(t, out, "<title>not the head title</title>")
}

func TestRenderInjectsStructuredDataBeforeHeadCloses(t *testing.T) {
	out, _ := renderSample(t, basePage)

	m := ldJSON.FindStringSubmatchIndex(out)
	require.NotNil(t, m, "ld+json script not found")
	assert.Equal(t, m[1], strings.Index(out, "</head>"))
	assert.Contains(t, out, "</script></head>")

	var data StructuredData
	require.NoError(t, json.Unmarshal([]byte(out[m[2]:m[3]]), &data))
	assert.Equal(t, "Teriyaki Chicken Casserole", data.Name)
	assert.Equal(t, 57, data.AggregateRating.RatingCount)
	assert.Len(t, data.RecipeInstructions, 3)
}

func TestRenderLeavesMissingTagsAlone(t *testing.T) {
	base := `<html><head><title>Home</title><meta name="viewport" content="width=device-width"></head><body></body></html>`

	out, meta := renderSample(t, base)

	assert.Contains(t, out, "<title>"+meta.Title+"</title>")
	assert.Contains(t, out, `<meta name="viewport" content="width=device-width"/>`)
	assert.NotContains(t, out, "og:title")
	assert.Regexp(t, ldJSON, out)
}

func TestRenderOnlyFirstMatchingMetaChanges(t *testing.T) {
	base := `<html><head>
<meta name="description" content="first">
<meta name="description" content="second">
</head><body></body></html>`

	out, meta := renderSample(t, base)

	assert.Contains(t, out, `content="`+meta.Description+`"`)
	assert.Contains(t, out, `content="second"`)
	assert.NotContains(t, out, `content="first"`)
}

func TestRenderEscapesRecipeText(t *testing.T) {
	gen := NewGenerator(Site{URL: "https://mykitchen.example"}, nil, nil)
	r := sampleRecipe()
	r.Name = `Fish & Chips </script><b>`
	data, err := gen.StructuredData(r)
	require.NoError(t, err)

	out, err := Render([]byte(basePage), gen.MetaTags(r), data)
	require.NoError(t, err)

	assert.Contains(t, string(out), "<title>Fish &amp; Chips &lt;/script&gt;&lt;b&gt; Recipe")
	assert.Equal(t, 1, strings.Count(string(out), "</script>"))
}
