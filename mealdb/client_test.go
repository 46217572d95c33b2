package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mykitchen_backend/apperr"
)

type recordedCall struct {
	operation string
	outcome   string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) ObserveUpstream(operation, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{operation, outcome})
}

// newTestClient serves handler as the MealDB API and records the last request URI.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func() string, *fakeRecorder) {
	t.Helper()

	var (
		mu      sync.Mutex
		lastURI string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastURI = r.URL.RequestURI()
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	rec := &fakeRecorder{}
	uri := func() string {
		mu.Lock()
		defer mu.Unlock()
		return lastURI
	}
	return NewClient(srv.URL+"/api/json/v1/1/", time.Second, zap.NewNop(), WithRecorder(rec)), uri, rec
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestSearchRelaysBodyVerbatim(t *testing.T) {
	body := `{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne"}]}`
	client, uri, rec := newTestClient(t, jsonBody(body))

	got, err := client.Search(context.Background(), "Arrabiata penne")
	require.NoError(t, err)

	assert.Equal(t, body, string(got))
	assert.Equal(t, "/api/json/v1/1/search.php?s=Arrabiata+penne", uri())
	assert.Equal(t, []recordedCall{{"search", "ok"}}, rec.calls)
}

func TestListAllUsesEmptySearch(t *testing.T) {
	client, uri, _ := newTestClient(t, jsonBody(`{"meals":null}`))

	_, err := client.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/json/v1/1/search.php?s=", uri())
}

func TestFilterByIngredientUsesFirstOnly(t *testing.T) {
	client, uri, _ := newTestClient(t, jsonBody(`{"meals":[]}`))

	_, err := client.FilterByIngredient(context.Background(), " chicken breast , garlic,rice")
	require.NoError(t, err)
	assert.Equal(t, "/api/json/v1/1/filter.php?i=chicken+breast", uri())
}

func TestRecipeDecodesFirstMeal(t *testing.T) {
	client, uri, _ := newTestClient(t, jsonBody(`{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strInstructions":"Bake.","strIngredient1":"soy sauce","strMeasure1":"3/4 cup"}]}`))

	r, err := client.Recipe(context.Background(), "52772")
	require.NoError(t, err)

	assert.Equal(t, "/api/json/v1/1/lookup.php?i=52772", uri())
	assert.Equal(t, "Teriyaki Chicken Casserole", r.Name)
	require.NotNil(t, r.Instructions)
	require.Len(t, r.Ingredients, 1)
}

func TestRecipeNotFound(t *testing.T) {
	for _, body := range []string{`{"meals":null}`, `{"meals":[]}`, `{}`} {
		client, _, _ := newTestClient(t, jsonBody(body))

		_, err := client.Recipe(context.Background(), "999999")
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, ErrNotFound), body)
		assert.Equal(t, http.StatusNotFound, apperr.From(err).StatusCode(), body)
	}
}

func TestUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		outcome string
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "down", http.StatusBadGateway) }, "bad_status"},
		{"invalid json", jsonBody(`<html>oops</html>`), "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, rec := newTestClient(t, tt.handler)

			_, err := client.Lookup(context.Background(), "1")
			require.Error(t, err)

			appErr := apperr.From(err)
			assert.Equal(t, apperr.CodeUpstreamFailure, appErr.Code)
			assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
			assert.Equal(t, []recordedCall{{"lookup", tt.outcome}}, rec.calls)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &fakeRecorder{}
	client := NewClient(base, time.Second, zap.NewNop(), WithRecorder(rec))

	_, err := client.Search(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUpstreamFailure, apperr.From(err).Code)
	assert.Equal(t, []recordedCall{{"search", "error"}}, rec.calls)
}

func TestNilLoggerDiscardsLogs(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(base, time.Second, nil)

	var err error
	require.NotPanics(t, func() { _, err = client.Search(context.Background(), "x") })
	assert.Equal(t, apperr.CodeUpstreamFailure, apperr.From(err).Code)
}

func TestRequestHonoursContext(t *testing.T) {
	block := make(chan struct{})
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Lookup(ctx, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestImage(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	})

	body, contentType, err := client.Image(context.Background(), client.baseURL+"/images/media/meals/x.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", contentType)
}
