package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/fittrack/apiserver/types"
)

func TestListUsersPublicProjection(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	env.addUser(t, "v@x.com", "vx", "secret1", types.RoleUser)
	token := env.tokenFor(t, user.ID)

	recorder := env.doJSON(t, http.MethodGet, "/users/", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", recorder.Code)
	}

	items, _ := decodeResponse(t, recorder)["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("listed %d users, want 2", len(items))
	}
	first, _ := items[0].(map[string]any)
	if first["nickName"] != "ux" {
		t.Fatalf("first nickName = %v, want ux", first["nickName"])
	}
	if _, hasEmail := first["email"]; hasEmail {
		t.Fatalf("public projection leaks email: %s", recorder.Body.String())
	}
}

func TestListAllUsersRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	admin := env.addUser(t, "adm@x.com", "adm", "secret1", types.RoleAdmin)

	denied := env.doJSON(t, http.MethodGet, "/users/all-users", env.tokenFor(t, user.ID), nil)
	if denied.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin status = %d, want 401", denied.Code)
	}

	allowed := env.doJSON(t, http.MethodGet, "/users/all-users", env.tokenFor(t, admin.ID), nil)
	if allowed.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", allowed.Code)
	}
	items, _ := decodeResponse(t, allowed)["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("listed %d users, want 2", len(items))
	}
	if strings.Contains(allowed.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", allowed.Body.String())
	}
}

func TestGetUserRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	admin := env.addUser(t, "adm@x.com", "adm", "secret1", types.RoleAdmin)

	denied := env.doJSON(t, http.MethodGet, "/users/1", env.tokenFor(t, user.ID), nil)
	if denied.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin status = %d, want 401", denied.Code)
	}

	allowed := env.doJSON(t, http.MethodGet, "/users/1", env.tokenFor(t, admin.ID), nil)
	if allowed.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200: %s", allowed.Code, allowed.Body.String())
	}
	data, _ := decodeResponse(t, allowed)["data"].(map[string]any)
	if data["email"] != "u@x.com" {
		t.Fatalf("email = %v, want u@x.com", data["email"])
	}
}

func TestUpdateUserSelf(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	token := env.tokenFor(t, user.ID)

	recorder := env.doJSON(t, http.MethodPut, "/users/1/", token, map[string]any{
		"name": "Updated",
		"age":  31,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}

	updated := env.userRepo.users[user.ID]
	if updated.Name != "Updated" || updated.Age != 31 {
		t.Fatalf("user not updated: %+v", updated)
	}
}

func TestUpdateUserOtherRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	intruder := env.addUser(t, "v@x.com", "vx", "secret1", types.RoleUser)
	admin := env.addUser(t, "adm@x.com", "adm", "secret1", types.RoleAdmin)

	denied := env.doJSON(t, http.MethodPut, "/users/1/", env.tokenFor(t, intruder.ID), map[string]any{
		"name": "Hijacked",
	})
	if denied.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin status = %d, want 401", denied.Code)
	}
	if env.userRepo.users[1].Name == "Hijacked" {
		t.Fatalf("non-admin updated another user")
	}

	allowed := env.doJSON(t, http.MethodPut, "/users/1/", env.tokenFor(t, admin.ID), map[string]any{
		"name": "Renamed",
	})
	if allowed.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", allowed.Code)
	}
	if env.userRepo.users[1].Name != "Renamed" {
		t.Fatalf("admin update not applied: %+v", env.userRepo.users[1])
	}
}

func TestUpdateUserRoleChangeAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	admin := env.addUser(t, "adm@x.com", "adm", "secret1", types.RoleAdmin)

	// A non-admin's role field is ignored on self-update.
	env.doJSON(t, http.MethodPut, "/users/1/", env.tokenFor(t, user.ID), map[string]any{
		"name": "Still",
		"role": "ADMIN",
	})
	if env.userRepo.users[user.ID].Role != types.RoleUser {
		t.Fatalf("non-admin escalated own role")
	}

	env.doJSON(t, http.MethodPut, "/users/1/", env.tokenFor(t, admin.ID), map[string]any{
		"role": "ADMIN",
	})
	if env.userRepo.users[user.ID].Role != types.RoleAdmin {
		t.Fatalf("admin role change not applied")
	}
}

func TestUpdateUserDuplicateNickname(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	second := env.addUser(t, "v@x.com", "vx", "secret1", types.RoleUser)

	recorder := env.doJSON(t, http.MethodPut, "/users/2/", env.tokenFor(t, second.ID), map[string]any{
		"nickName": "ux",
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("update status = %d, want 409 for duplicate nickname", recorder.Code)
	}
}

func TestUpdateUserAbsentTargetIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "adm@x.com", "adm", "secret1", types.RoleAdmin)

	recorder := env.doJSON(t, http.MethodPut, "/users/42/", env.tokenFor(t, admin.ID), map[string]any{
		"name": "Ghost",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", recorder.Code)
	}
	resp := decodeResponse(t, recorder)
	if resp["message"] != "Nothing updated" {
		t.Fatalf("message = %q, want Nothing updated", resp["message"])
	}
}

func TestProfileData(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u@x.com", "ux", "secret1", types.RoleUser)
	token := env.tokenFor(t, user.ID)

	recorder := env.doJSON(t, http.MethodGet, "/users/profile-data/", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200", recorder.Code)
	}
	data, _ := decodeResponse(t, recorder)["data"].(map[string]any)
	profile, _ := data["user"].(map[string]any)
	if profile == nil || profile["email"] != "u@x.com" {
		t.Fatalf("unexpected profile: %s", recorder.Body.String())
	}
}
