package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/middleware"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/sse"
	"github.com/GTDGit/gtd_catalog/internal/utils"
	"github.com/GTDGit/gtd_catalog/pkg/fakestore"
)

var upstreamProducts = []fakestore.Product{
	{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Image: "https://img.example.com/1.png", Description: "bag", Rating: fakestore.Rating{Rate: 3.9, Count: 120}},
	{ID: 2, Title: "Bracelet", Price: 695, Category: "jewelery", Image: "https://img.example.com/2.png", Description: "gold", Rating: fakestore.Rating{Rate: 4.6, Count: 400}},
	{ID: 3, Title: "SSD 256GB", Price: 109, Category: "electronics", Image: "https://img.example.com/3.png", Description: "fast", Rating: fakestore.Rating{Rate: 4.8, Count: 319}},
	{ID: 4, Title: "Monitor", Price: 599, Category: "electronics", Image: "https://img.example.com/4.png", Description: "wide", Rating: fakestore.Rating{Rate: 2.9, Count: 250}},
	{ID: 5, Title: "Gaming Drive", Price: 114, Category: "electronics", Image: "https://img.example.com/5.png", Description: "big", Rating: fakestore.Rating{Rate: 4.8, Count: 400}},
	{ID: 6, Title: "Rain Jacket", Price: 39.99, Category: "women's clothing", Image: "https://img.example.com/6.png", Description: "dry", Rating: fakestore.Rating{Rate: 3.8, Count: 679}},
}

var upstreamCategories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, upstreamProducts)
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, upstreamCategories)
	})
	mux.HandleFunc("GET /products/category/{name}", func(w http.ResponseWriter, r *http.Request) {
		out := []fakestore.Product{}
		for _, p := range upstreamProducts {
			if p.Category == r.PathValue("name") {
				out = append(out, p)
			}
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, p := range upstreamProducts {
			if p.ID == id {
				writeJSON(w, p)
				return
			}
		}
		// the demo API answers unknown ids with an empty 200
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fakestore.Product{ID: 21})
	})
	mux.HandleFunc("PUT /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		writeJSON(w, fakestore.Product{ID: id})
	})
	mux.HandleFunc("DELETE /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fakestore.Product{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	router   *gin.Engine
	auth     *service.AuthService
	hub      *sse.Hub
	upstream *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := newUpstream(t)
	store := cache.NewMemoryStore()
	client := fakestore.NewClient(fakestore.Config{BaseURL: upstream.URL})

	authSvc, err := service.NewAuthService(cache.NewSessionStore(store), utils.NewTokenSigner("test-secret"), service.AuthOptions{})
	require.NoError(t, err)
	hub := sse.NewHub()
	catalogSvc := service.NewCatalogService(client, cache.NewCatalogCache(store, 0), sse.NewHubNotifier(hub), 0)

	handlers := &Handlers{
		Health:    NewHealthHandler(client, nil),
		Auth:      NewAuthHandler(authSvc, false),
		Product:   NewProductHandler(catalogSvc),
		Dashboard: NewDashboardHandler(catalogSvc),
		Page:      NewPageHandler(authSvc, catalogSvc, false),
		SSE:       NewSSEHandler(hub),
	}
	r, err := NewRouter(handlers, middleware.NewAuthMiddleware(authSvc), nil)
	require.NoError(t, err)

	return &testApp{router: r, auth: authSvc, hub: hub, upstream: upstream}
}

// token logs in a fresh session and returns its signed token.
func (a *testApp) token(t *testing.T) string {
	t.Helper()
	sessionID := service.NewSessionID()
	user, err := a.auth.Login(context.Background(), sessionID, service.DemoEmail, service.DemoPassword)
	require.NoError(t, err)
	token, err := a.auth.IssueToken(sessionID, user)
	require.NoError(t, err)
	return token
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
