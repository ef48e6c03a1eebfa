package router

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	noop := func(*gin.Context) {}

	r := gin.New()
	api := r.Group("/api")
	api.GET("/recipes/:id", noop)
	api.PATCH("/recipes/:id", noop)
	api.DELETE("/recipes/:id", noop)
	api.GET("/admin/users", noop)
	api.PATCH("/admin/users/:id/staff", noop)
	api.GET("/admin/authz/roles", noop)
	api.POST("/admin/authz/roles", noop)
	api.OPTIONS("/admin/authz/roles", noop)

	entries := permissionCatalog(r.Routes())
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Module+" "+e.Permission)
	}
	want := []string{
		"authz GET:/admin/authz/roles",
		"authz POST:/admin/authz/roles",
		"recipes DELETE:/recipes/:id",
		"recipes PATCH:/recipes/:id",
		"users GET:/admin/users",
		"users PATCH:/admin/users/:id/staff",
	}
	if len(got) != len(want) {
		t.Fatalf("catalog want %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d want %q got %q", i, want[i], got[i])
		}
	}
}

func TestPermissionModule(t *testing.T) {
	cases := map[string]string{
		"/admin/tags/:id": "tags",
		"/admin":          "admin",
		"/recipes/:id":    "recipes",
		"/":               "system",
	}
	for in, want := range cases {
		if got := permissionModule(in); got != want {
			t.Fatalf("permissionModule(%q) = %q want %q", in, got, want)
		}
	}
}
