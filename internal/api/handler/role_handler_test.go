package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

func TestRoleHandler_Assign_Success(t *testing.T) {
	stub := &stubRoleService{
		assignFn: func(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error) {
			if input.UserID != "user-2" || input.RoleCode != "manager" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.RoleAssignment{
				ID:         "assign-1",
				UserID:     input.UserID,
				RoleCode:   domain.RoleManager,
				AssignedBy: claims.UserID,
				IsActive:   true,
			}, nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/v1/users/user-2/roles", `{"role_code":"manager"}`)
	c.SetParamNames("user_id")
	c.SetParamValues("user-2")
	setClaims(c, "admin-1", "admin")

	if err := h.Assign(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp roleAssignmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.RoleCode != "manager" || !resp.IsActive {
		t.Fatalf("unexpected assignment: %+v", resp)
	}
}

func TestRoleHandler_Assign_RejectsUnknownRole(t *testing.T) {
	stub := &stubRoleService{
		assignFn: func(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewRoleHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/v1/users/user-2/roles", `{"role_code":"superuser"}`)
	c.SetParamNames("user_id")
	c.SetParamValues("user-2")
	setClaims(c, "admin-1", "admin")

	err := h.Assign(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRoleHandler_Assign_SurfacesAlreadyAssigned(t *testing.T) {
	stub := &stubRoleService{
		assignFn: func(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error) {
			return nil, domain.ErrRoleAlreadyAssigned
		},
	}
	h := NewRoleHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/v1/users/user-2/roles", `{"role_code":"manager"}`)
	c.SetParamNames("user_id")
	c.SetParamValues("user-2")
	setClaims(c, "admin-1", "admin")

	if err := h.Assign(c); !errors.Is(err, domain.ErrRoleAlreadyAssigned) {
		t.Fatalf("expected ErrRoleAlreadyAssigned, got %v", err)
	}
}

func TestRoleHandler_Revoke_Success(t *testing.T) {
	var gotUser, gotRole string
	stub := &stubRoleService{
		revokeFn: func(ctx context.Context, claims ports.TokenClaims, userID, roleCode string) error {
			gotUser, gotRole = userID, roleCode
			return nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newContext(t, http.MethodDelete, "/v1/users/user-2/roles/manager", "")
	c.SetParamNames("user_id", "role_code")
	c.SetParamValues("user-2", "manager")
	setClaims(c, "admin-1", "admin")

	if err := h.Revoke(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotUser != "user-2" || gotRole != "manager" {
		t.Fatalf("params not forwarded: %s %s", gotUser, gotRole)
	}
}

func TestRoleHandler_List_ReturnsActiveAssignments(t *testing.T) {
	stub := &stubRoleService{
		rolesFn: func(ctx context.Context, userID string) ([]*domain.RoleAssignment, error) {
			return []*domain.RoleAssignment{
				{ID: "assign-1", UserID: userID, RoleCode: domain.RoleEmployee, IsActive: true},
			}, nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/v1/users/user-2/roles", "")
	c.SetParamNames("user_id")
	c.SetParamValues("user-2")
	setClaims(c, "admin-1", "admin")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listRolesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.UserID != "user-2" || len(resp.Roles) != 1 || resp.Roles[0].RoleCode != "employee" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
