package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/config"
)

// newTestClient points a Client at a fake TMDB served by httptest.
func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(config.CatalogConfig{
		BaseURL:     srv.URL,
		AccessToken: "test-access-token",
		Region:      "US",
		Timeout:     2 * time.Second,
	})
	return client, srv
}

func assertUpstreamError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d", expectedCode, appErr.Code)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"id":550,"title":"Fight Club"}`))
	})
	defer srv.Close()

	if _, err := client.Movie(context.Background(), 550); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-access-token" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected Accept application/json, got %q", gotAccept)
	}
}

func TestClient_Movie(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/550" {
			t.Errorf("expected /movie/550, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "videos" {
			t.Errorf("expected videos appended, got %q", r.URL.Query().Get("append_to_response"))
		}
		w.Write([]byte(`{
			"id": 550, "title": "Fight Club", "runtime": 139,
			"videos": {"results": [{"key": "abc123", "site": "YouTube", "type": "Trailer"}]}
		}`))
	})
	defer srv.Close()

	detail, err := client.Movie(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Title != "Fight Club" || detail.Runtime != 139 {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if len(detail.Videos.Results) != 1 || detail.Videos.Results[0].Key != "abc123" {
		t.Errorf("expected appended trailer, got %+v", detail.Videos.Results)
	}
}

func TestClient_MovieNotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.Movie(context.Background(), 999999)
	assertUpstreamError(t, err, 404)
}

func TestClient_UpstreamFailureIs502(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.MovieList(context.Background(), ListPopular, 1)
	assertUpstreamError(t, err, 502)
}

func TestClient_MovieListKindPaths(t *testing.T) {
	tests := []struct {
		kind     ListKind
		wantPath string
	}{
		{ListNew, "/movie/now_playing"},
		{ListPopular, "/movie/popular"},
		{ListHighlyRated, "/movie/top_rated"},
		{ListDiscover, "/discover/movie"},
		{ListKind("bogus"), "/discover/movie"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var gotPath, gotPage string
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotPage = r.URL.Query().Get("page")
				w.Write([]byte(`{"results": [{"id": 1, "title": "A"}]}`))
			})
			defer srv.Close()

			movies, err := client.MovieList(context.Background(), tt.kind, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, gotPath)
			}
			if gotPage != "3" {
				t.Errorf("expected page=3, got %q", gotPage)
			}
			if len(movies) != 1 {
				t.Errorf("expected 1 movie, got %d", len(movies))
			}
		})
	}
}

func TestClient_ReviewsFlattened(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"author": "alice", "content": "Great.", "author_details": {"rating": 9.0}},
			{"author": "bob", "content": "Meh.", "author_details": {}}
		]}`))
	})
	defer srv.Close()

	reviews, err := client.Reviews(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].Author != "alice" || reviews[0].Rating == nil || *reviews[0].Rating != 9.0 {
		t.Errorf("unexpected first review: %+v", reviews[0])
	}
	if reviews[1].Rating != nil {
		t.Errorf("expected nil rating when author gave none, got %v", *reviews[1].Rating)
	}
}

func TestClient_SimilarUsesRecommendations(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"results": []}`))
	})
	defer srv.Close()

	movies, err := client.Similar(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/movie/550/recommendations" {
		t.Errorf("expected recommendations path, got %s", gotPath)
	}
	if movies == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestClient_WatchProvidersRegionalFlatrate(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {
			"US": {"flatrate": [
				{"provider_id": 8, "provider_name": "Netflix", "logo_path": "/n.png"}
			], "rent": [
				{"provider_id": 2, "provider_name": "Apple TV", "logo_path": "/a.png"}
			]},
			"GB": {"flatrate": [
				{"provider_id": 9, "provider_name": "Sky", "logo_path": "/s.png"}
			]}
		}}`))
	})
	defer srv.Close()

	providers, err := client.WatchProviders(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only the configured region's flat-rate offers survive the reshape.
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if providers[0].ID != 8 || providers[0].Name != "Netflix" || providers[0].Logo != "/n.png" {
		t.Errorf("unexpected provider: %+v", providers[0])
	}
}

func TestClient_WatchProvidersNoRegionalOffers(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"FR": {"flatrate": [{"provider_id": 1}]}}}`))
	})
	defer srv.Close()

	providers, err := client.WatchProviders(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if providers == nil || len(providers) != 0 {
		t.Errorf("expected empty slice, got %v", providers)
	}
}

func TestClient_AllProvidersSortedByPriority(t *testing.T) {
	var gotRegion string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotRegion = r.URL.Query().Get("watch_region")
		w.Write([]byte(`{"results": [
			{"provider_id": 2, "provider_name": "Second", "display_priority": 5},
			{"provider_id": 1, "provider_name": "First", "display_priority": 1},
			{"provider_id": 3, "provider_name": "Third", "display_priority": 9}
		]}`))
	})
	defer srv.Close()

	providers, err := client.AllProviders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRegion != "US" {
		t.Errorf("expected watch_region=US, got %q", gotRegion)
	}
	if len(providers) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(providers))
	}
	if providers[0].Name != "First" || providers[1].Name != "Second" || providers[2].Name != "Third" {
		t.Errorf("expected priority order, got %+v", providers)
	}
}

func TestClient_UnreachableUpstream(t *testing.T) {
	client := NewClient(config.CatalogConfig{
		BaseURL:     "http://127.0.0.1:1", // nothing listens here
		AccessToken: "test-access-token",
		Region:      "US",
		Timeout:     time.Second,
	})

	_, err := client.AllProviders(context.Background())
	assertUpstreamError(t, err, 502)
}
