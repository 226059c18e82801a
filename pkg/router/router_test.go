package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/souqdz/souq/pkg/router"
)

func handler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestMethodsAndGroups(t *testing.T) {
	r := router.New()
	r.Get("/items", "items.index", handler("index"))
	r.Post("/items", "items.store", handler("store"))

	g := r.Group("/admin")
	g.Put("/items/{id}", "admin.items.update", handler("update"))
	g.Patch("/items/{id}", "admin.items.patch", handler("patch"))
	g.Delete("/items/{id}", "admin.items.delete", handler("delete"))

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/items", "index"},
		{http.MethodPost, "/items", "store"},
		{http.MethodPut, "/admin/items/1", "update"},
		{http.MethodPatch, "/admin/items/1", "patch"},
		{http.MethodDelete, "/admin/items/1", "delete"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != tc.want {
			t.Errorf("%s %s: got %d %q, want 200 %q", tc.method, tc.path, rec.Code, rec.Body.String(), tc.want)
		}
	}
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{slug}", "products.show", handler("ok"))

	url, err := r.URL("products.show", map[string]string{"slug": "red-shoes-1"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/products/red-shoes-1" {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestRoutesSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", handler("a"))
	g := r.Group("/api")
	g.Post("/b", "b", handler("b"))

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(infos))
	}
	if infos[1].Method != http.MethodPost || infos[1].Path != "/api/b" {
		t.Errorf("unexpected route info: %+v", infos[1])
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", mw("outer"))
	sub := g.Group("/v1", mw("inner"))
	sub.Get("/x", "x", handler("x"), mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/x", nil))

	want := []string{"outer", "inner", "route"}
	for i, name := range want {
		if i >= len(order) || order[i] != name {
			t.Fatalf("middleware order = %v, want %v", order, want)
		}
	}
}
