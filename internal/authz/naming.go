package authz

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

const (
	apiPrefix  = "/api"
	userPrefix = "user:"
	rolePrefix = "role:"
	// 所有角色都挂在锚点下，空角色也能被枚举出来
	roleAnchor = "role:__anchor__"
)

// Policy 一条 (主体, 资源, 动作) 授权
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

func comparePolicy(a, b Policy) int {
	return cmp.Or(
		cmp.Compare(a.Object, b.Object),
		cmp.Compare(a.Action, b.Action),
		cmp.Compare(a.Subject, b.Subject),
	)
}

// policiesFromRules 跳过残缺行，排序并去重
func policiesFromRules(rules [][]string) []Policy {
	out := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) >= 3 {
			out = append(out, Policy{
				Subject: strings.TrimSpace(rule[0]),
				Object:  NormalizeObject(rule[1]),
				Action:  NormalizeAction(rule[2]),
			})
		}
	}
	slices.SortFunc(out, comparePolicy)
	return slices.Compact(out)
}

// SubjectForUser user:<id>
func SubjectForUser(userID uint) string {
	return userPrefix + strconv.FormatUint(uint64(userID), 10)
}

// NormalizeRole "Photo Editor" -> "role:photo_editor"
func NormalizeRole(role string) (string, error) {
	name := strings.Join(strings.Fields(strings.ToLower(role)), "_")
	name = strings.TrimPrefix(name, rolePrefix)
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 资源统一为以 / 开头、不带 /api 前缀的路径
func NormalizeObject(object string) string {
	object = strings.TrimSpace(object)
	if !strings.HasPrefix(object, "/") {
		object = "/" + object
	}
	if object == apiPrefix {
		return "/"
	}
	if rest, ok := strings.CutPrefix(object, apiPrefix+"/"); ok {
		return "/" + rest
	}
	return object
}

func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func isRole(name string) bool {
	return strings.HasPrefix(name, rolePrefix) && name != roleAnchor
}
