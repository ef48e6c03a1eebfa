package router

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/foodgram-next/internal/authz"

	"github.com/gin-gonic/gin"
)

// 后台以外、同样按策略放行的资源
var policyGuardedRoutes = map[string]bool{
	http.MethodPatch + " /recipes/:id":  true,
	http.MethodDelete + " /recipes/:id": true,
}

// PermissionEntry 可授权的一条 (方法, 资源)，供后台配置角色时选择
type PermissionEntry struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册路由生成，按模块、资源、方法排序
func permissionCatalog(routes gin.RoutesInfo) []PermissionEntry {
	entries := make([]PermissionEntry, 0, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		if method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		if !strings.HasPrefix(object, "/admin/") && !policyGuardedRoutes[method+" "+object] {
			continue
		}
		entries = append(entries, PermissionEntry{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: method + ":" + object,
		})
	}
	slices.SortFunc(entries, func(a, b PermissionEntry) int {
		return cmp.Or(cmp.Compare(a.Module, b.Module), cmp.Compare(a.Object, b.Object), cmp.Compare(a.Method, b.Method))
	})
	return slices.CompactFunc(entries, func(a, b PermissionEntry) bool {
		return a.Permission == b.Permission
	})
}

// permissionModule /admin/tags/:id -> tags，/recipes/:id -> recipes
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if segments[0] == "admin" && len(segments) > 1 {
		return segments[1]
	}
	if segments[0] == "" {
		return "system"
	}
	return segments[0]
}
