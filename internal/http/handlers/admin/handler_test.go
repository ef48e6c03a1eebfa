package admin

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
	"github.com/foodgram-next/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type testEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		t.Fatalf("register validators failed: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrateWith(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		Pagination: config.PaginationConfig{DefaultLimit: 6, MaxLimit: 100},
	}
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuthzAuditLogRepository(db)
	auditService := service.NewAuthzAuditService(auditRepo)
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	c := &provider.Container{
		Config:            cfg,
		AuthzService:      authzService,
		UserRepo:          userRepo,
		AuthzAuditLogRepo: auditRepo,
		AuthzAuditService: auditService,
		UserService:       service.NewUserService(userRepo, repository.NewSubscriptionRepository(db), nil, auditService),
		TagService:        service.NewTagService(repository.NewTagRepository(db)),
		IngredientService: service.NewIngredientService(repository.NewIngredientRepository(db), nil),
	}
	return New(c), db
}

func newAdminContext(w *httptest.ResponseRecorder, req *http.Request, userID uint, params gin.Params) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Request.Header.Set("X-Locale", "en-US")
	c.Params = params
	if userID != 0 {
		c.Set("user_id", userID)
	}
	c.Set("request_id", "req-admin-test")
	return c
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string, userID uint, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler(newAdminContext(w, req, userID, params))
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope failed: %v body=%s", err, w.Body.String())
	}
	return env
}

func createAdminTestUser(t *testing.T, db *gorm.DB, username string, isStaff bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		IsStaff:      isStaff,
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestAdminTagCRUD(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	staff := createAdminTestUser(t, db, "chef", true)

	w := performJSON(t, h.CreateTag, http.MethodPost, "/api/admin/tags",
		`{"name":"Завтрак","color":"#e26c2d","slug":"Breakfast"}`, staff.ID, nil)
	env := decodeEnvelope(t, w)
	if env.StatusCode != 0 {
		t.Fatalf("create tag failed: %+v", env)
	}
	var tag models.Tag
	if err := json.Unmarshal(env.Data, &tag); err != nil {
		t.Fatalf("decode tag failed: %v", err)
	}
	if tag.Color != "#E26C2D" || tag.Slug != "breakfast" {
		t.Fatalf("tag not normalized: %+v", tag)
	}

	w = performJSON(t, h.CreateTag, http.MethodPost, "/api/admin/tags",
		`{"name":"Завтрак","color":"#000000","slug":"other"}`, staff.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 409 {
		t.Fatalf("expected conflict, got %+v", env)
	}

	w = performJSON(t, h.CreateTag, http.MethodPost, "/api/admin/tags",
		`{"name":"Обед","color":"red","slug":"lunch"}`, staff.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("expected bad request for color, got %+v", env)
	}

	idParam := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", tag.ID)}}
	w = performJSON(t, h.UpdateTag, http.MethodPut, "/api/admin/tags/1",
		`{"name":"Завтрак","color":"#00FF00","slug":"breakfast"}`, staff.ID, idParam)
	if env := decodeEnvelope(t, w); env.StatusCode != 0 {
		t.Fatalf("update tag failed: %+v", env)
	}

	w = performJSON(t, h.DeleteTag, http.MethodDelete, "/api/admin/tags/1", "", staff.ID, idParam)
	if env := decodeEnvelope(t, w); env.StatusCode != 0 {
		t.Fatalf("delete tag failed: %+v", env)
	}
	w = performJSON(t, h.DeleteTag, http.MethodDelete, "/api/admin/tags/1", "", staff.ID, idParam)
	if env := decodeEnvelope(t, w); env.StatusCode != 404 {
		t.Fatalf("expected not found after delete, got %+v", env)
	}
}

func TestAdminIngredientImport(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	staff := createAdminTestUser(t, db, "chef", true)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "ingredients.csv")
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	_, _ = part.Write([]byte("name,measurement_unit\nсахар,гр\nсоль,гр\nсахар,гр\n"))
	_ = writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingredients/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	h.ImportIngredients(newAdminContext(w, req, staff.ID, nil))

	env := decodeEnvelope(t, w)
	if env.StatusCode != 0 {
		t.Fatalf("import failed: %+v", env)
	}
	var result service.IngredientImportResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result failed: %v", err)
	}
	if result.Total != 2 || result.Inserted != 2 || result.Queued {
		t.Fatalf("unexpected import result: %+v", result)
	}

	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 ingredients, got %d", count)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/ingredients/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=none")
	h.ImportIngredients(newAdminContext(w, req, staff.ID, nil))
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("expected missing file error, got %+v", env)
	}
}

func TestAdminIngredientWrite(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	staff := createAdminTestUser(t, db, "chef", true)

	w := performJSON(t, h.CreateIngredient, http.MethodPost, "/api/admin/ingredients",
		`{"name":"мука","measurement_unit":"кг"}`, staff.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 0 {
		t.Fatalf("create ingredient failed: %+v", env)
	}
	w = performJSON(t, h.CreateIngredient, http.MethodPost, "/api/admin/ingredients",
		`{"name":"мука","measurement_unit":"ведро"}`, staff.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("expected invalid unit, got %+v", env)
	}
	w = performJSON(t, h.CreateIngredient, http.MethodPost, "/api/admin/ingredients",
		`{"name":"мука","measurement_unit":"кг"}`, staff.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 409 {
		t.Fatalf("expected duplicate ingredient, got %+v", env)
	}
}

func TestAdminSetUserStaff(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := createAdminTestUser(t, db, "admin", true)
	cook := createAdminTestUser(t, db, "cook", false)

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", cook.ID)}}
	w := performJSON(t, h.SetUserStaff, http.MethodPatch, "/api/admin/users/2/staff", `{"is_staff":true}`, admin.ID, params)
	env := decodeEnvelope(t, w)
	if env.StatusCode != 0 {
		t.Fatalf("grant staff failed: %+v", env)
	}
	var view AdminUserView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode user failed: %v", err)
	}
	if !view.IsStaff {
		t.Fatalf("expected staff flag set")
	}

	selfParams := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", admin.ID)}}
	w = performJSON(t, h.SetUserStaff, http.MethodPatch, "/api/admin/users/1/staff", `{"is_staff":false}`, admin.ID, selfParams)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("expected self demote rejected, got %+v", env)
	}

	w = performJSON(t, h.SetUserStaff, http.MethodPatch, "/api/admin/users/2/staff", `{}`, admin.ID, params)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("expected missing is_staff rejected, got %+v", env)
	}

	w = performJSON(t, h.ListUsers, http.MethodGet, "/api/admin/users?is_staff=true", "", admin.ID, nil)
	env = decodeEnvelope(t, w)
	var staffUsers []AdminUserView
	if err := json.Unmarshal(env.Data, &staffUsers); err != nil {
		t.Fatalf("decode users failed: %v", err)
	}
	if len(staffUsers) != 2 {
		t.Fatalf("expected 2 staff users, got %d", len(staffUsers))
	}

	w = performJSON(t, h.ListAuthzAuditLogs, http.MethodGet, "/api/admin/authz/audit-logs?action=grant_staff", "", admin.ID, nil)
	env = decodeEnvelope(t, w)
	var logs []models.AuthzAuditLog
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		t.Fatalf("decode audit logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].TargetUsername != "cook" || logs[0].RequestID != "req-admin-test" {
		t.Fatalf("unexpected audit logs: %+v", logs)
	}

	w = performJSON(t, h.PurgeAuthzAuditLogs, http.MethodDelete, "/api/admin/authz/audit-logs", "", admin.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 {
		t.Fatalf("purge without before should be rejected, got %+v", env)
	}
	w = performJSON(t, h.PurgeAuthzAuditLogs, http.MethodDelete, "/api/admin/authz/audit-logs?before=2999-01-01", "", admin.ID, nil)
	env = decodeEnvelope(t, w)
	var purged struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(env.Data, &purged); err != nil || purged.Deleted < 1 {
		t.Fatalf("unexpected purge result: %+v err=%v", env, err)
	}
	w = performJSON(t, h.ListAuthzAuditLogs, http.MethodGet, "/api/admin/authz/audit-logs", "", admin.ID, nil)
	env = decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		t.Fatalf("decode audit logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "audit_purge" {
		t.Fatalf("only the purge record should remain, got %+v", logs)
	}
}

func TestAdminAuthzRoleLifecycle(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := createAdminTestUser(t, db, "boss", true)
	target := createAdminTestUser(t, db, "helper", false)

	w := performJSON(t, h.CreateAuthzRole, http.MethodPost, "/api/admin/authz/roles", `{"role":"Photo Editor"}`, admin.ID, nil)
	env := decodeEnvelope(t, w)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), "role:photo_editor") {
		t.Fatalf("create role failed: %+v", env)
	}

	w = performJSON(t, h.GrantAuthzPolicy, http.MethodPost, "/api/admin/authz/policies",
		`{"role":"photo_editor","object":"/api/recipes/:id","action":"patch"}`, admin.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 0 {
		t.Fatalf("grant policy failed: %+v", env)
	}
	w = performJSON(t, h.GrantAuthzPolicy, http.MethodPost, "/api/admin/authz/policies", `{"role":"photo_editor"}`, admin.ID, nil)
	if env := decodeEnvelope(t, w); env.StatusCode != 400 || !strings.Contains(string(env.Data), `"object":"required"`) {
		t.Fatalf("incomplete policy should report fields, got %+v", env)
	}

	userParams := gin.Params{{Key: "id", Value: fmt.Sprint(target.ID)}}
	w = performJSON(t, h.SetAuthzUserRoles, http.MethodPut, "/api/admin/authz/users/2/roles", `{"roles":["photo_editor"]}`, admin.ID, userParams)
	env = decodeEnvelope(t, w)
	var roles []string
	if err := json.Unmarshal(env.Data, &roles); err != nil || len(roles) != 1 || roles[0] != "role:photo_editor" {
		t.Fatalf("set user roles unexpected: %+v err=%v", env, err)
	}
	allowed, err := h.AuthzService.EnforceUser(target.ID, "/api/recipes/9", "PATCH")
	if err != nil || !allowed {
		t.Fatalf("target should be allowed to patch recipes, allowed=%v err=%v", allowed, err)
	}

	missing := gin.Params{{Key: "id", Value: "999"}}
	w = performJSON(t, h.GetAuthzUserRoles, http.MethodGet, "/api/admin/authz/users/999/roles", "", admin.ID, missing)
	if env := decodeEnvelope(t, w); env.StatusCode != 404 {
		t.Fatalf("unknown user want 404, got %+v", env)
	}

	builtin := gin.Params{{Key: "role", Value: "role%3Astaff"}}
	w = performJSON(t, h.DeleteAuthzRole, http.MethodDelete, "/api/admin/authz/roles/role%3Astaff", "", admin.ID, builtin)
	if env := decodeEnvelope(t, w); env.StatusCode != 409 {
		t.Fatalf("builtin role delete want 409, got %+v", env)
	}

	w = performJSON(t, h.ListAuthzAuditLogs, http.MethodGet, "/api/admin/authz/audit-logs?action=policy_grant", "", admin.ID, nil)
	env = decodeEnvelope(t, w)
	var logs []models.AuthzAuditLog
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		t.Fatalf("decode audit logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Role != "role:photo_editor" || logs[0].Detail != "PATCH /recipes/:id" {
		t.Fatalf("unexpected policy audit: %+v", logs)
	}
}
