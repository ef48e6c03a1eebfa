package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/foodgram-next/internal/repository"
)

func TestAuthzAuditRecordAndPurge(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuthzAuditService(repository.NewAuthzAuditLogRepository(db))

	if err := svc.Record(AuthzAuditRecordInput{OperatorUserID: 1, Action: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty action want ErrInvalidInput got %v", err)
	}
	if err := svc.Record(AuthzAuditRecordInput{Action: AuthzAuditActionRoleCreate}); err != nil {
		t.Fatalf("system change should be skipped silently, got %v", err)
	}
	err := svc.Record(AuthzAuditRecordInput{
		OperatorUserID:   1,
		OperatorUsername: " admin ",
		Action:           AuthzAuditActionPolicyGrant,
		Role:             "role:editor",
		Detail:           strings.Repeat("я", 300),
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	items, total, err := svc.List(repository.AuthzAuditLogListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("want exactly one record, got total=%d len=%d", total, len(items))
	}
	if items[0].OperatorUsername != "admin" {
		t.Fatalf("operator username should be trimmed, got %q", items[0].OperatorUsername)
	}
	if n := len([]rune(items[0].Detail)); n != auditTextMaxLen {
		t.Fatalf("detail should be clipped to %d runes, got %d", auditTextMaxLen, n)
	}

	if _, err := svc.Purge(time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero cutoff want ErrInvalidInput got %v", err)
	}
	deleted, err := svc.Purge(time.Now().Add(time.Minute))
	if err != nil || deleted != 1 {
		t.Fatalf("purge want 1 deleted got %d, %v", deleted, err)
	}
}

func TestNilAuthzAuditServiceIsNoop(t *testing.T) {
	var svc *AuthzAuditService
	if err := svc.Record(AuthzAuditRecordInput{OperatorUserID: 1, Action: AuthzAuditActionPurge}); err != nil {
		t.Fatalf("nil service record should be noop, got %v", err)
	}
	items, total, err := svc.List(repository.AuthzAuditLogListFilter{})
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("nil service list should be empty")
	}
}
