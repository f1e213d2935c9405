package permissions

import (
	"testing"

	"lineagehub/internal/models"
)

// fakeScope is a canned subtree resolver keyed by root member id
type fakeScope map[string][]string

func (s fakeScope) SubtreeIDs(rootID string) []string { return s[rootID] }

func strptr(s string) *string { return &s }

func superAdmin() models.User {
	return models.User{
		ID:    "u1",
		Email: "admin@example.com",
		Roles: []models.UserRole{{ID: "r1", Role: models.RoleSuperAdmin}},
	}
}

func branchAdmin(managed ...string) models.User {
	u := models.User{ID: "u2", Email: "branch@example.com"}
	for i, id := range managed {
		u.Roles = append(u.Roles, models.UserRole{
			ID:              "r" + string(rune('a'+i)),
			Role:            models.RoleBranchAdmin,
			ManagedMemberID: strptr(id),
		})
	}
	return u
}

func plainUser() models.User {
	return models.User{
		ID:    "u3",
		Email: "user@example.com",
		Roles: []models.UserRole{{ID: "r9", Role: models.RoleUser}},
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name        string
		user        models.User
		superAdmin  bool
		branchAdmin bool
	}{
		{"super admin", superAdmin(), true, false},
		{"branch admin", branchAdmin("m5"), false, true},
		{"plain user", plainUser(), false, false},
		{"no roles", models.User{ID: "u0"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSuperAdmin(tt.user); got != tt.superAdmin {
				t.Errorf("IsSuperAdmin() = %t, want %t", got, tt.superAdmin)
			}
			if got := IsBranchAdmin(tt.user); got != tt.branchAdmin {
				t.Errorf("IsBranchAdmin() = %t, want %t", got, tt.branchAdmin)
			}
		})
	}
}

func TestManagedMemberIDs(t *testing.T) {
	if got := ManagedMemberIDs(superAdmin()); len(got) != 0 {
		t.Errorf("SUPER_ADMIN carries no managed member, got %v", got)
	}

	got := ManagedMemberIDs(branchAdmin("m5", "m8"))
	if len(got) != 2 || got[0] != "m5" || got[1] != "m8" {
		t.Errorf("ManagedMemberIDs() = %v, want [m5 m8]", got)
	}

	// A BRANCH_ADMIN role without a managed member id carries no scope
	unscoped := models.User{Roles: []models.UserRole{{Role: models.RoleBranchAdmin}}}
	if got := ManagedMemberIDs(unscoped); len(got) != 0 {
		t.Errorf("unscoped branch admin = %v, want empty", got)
	}
}

func TestCanEditMember(t *testing.T) {
	// m5's subtree: m5, its child m6 and grandchild m7; m9 is elsewhere
	scope := fakeScope{
		"m5": {"m5", "m6", "m7"},
	}

	tests := []struct {
		name     string
		user     models.User
		memberID string
		want     bool
	}{
		{"super admin edits anyone", superAdmin(), "m9", true},
		{"branch admin edits managed root", branchAdmin("m5"), "m5", true},
		{"branch admin edits descendant", branchAdmin("m5"), "m7", true},
		{"branch admin outside subtree", branchAdmin("m5"), "m9", false},
		{"plain user edits nobody", plainUser(), "m5", false},
		{"unscoped branch admin edits nobody", models.User{Roles: []models.UserRole{{Role: models.RoleBranchAdmin}}}, "m5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditMember(tt.user, tt.memberID, scope); got != tt.want {
				t.Errorf("CanEditMember(%s) = %t, want %t", tt.memberID, got, tt.want)
			}
		})
	}
}

func TestCanEditRelationship(t *testing.T) {
	scope := fakeScope{"m5": {"m5", "m6", "m7"}}
	admin := branchAdmin("m5")

	inside := models.Relationship{
		FromMemberID:     "m5",
		ToMemberID:       "m6",
		RelationshipType: models.RelationshipParentChild,
	}
	if !CanEditRelationship(admin, inside, scope) {
		t.Error("edge inside the managed subtree should be editable")
	}

	// The parent edge pointing at the managed member anchors the admin's
	// scope and must stay untouchable even with both ends in the subtree
	anchor := models.Relationship{
		FromMemberID:     "m6",
		ToMemberID:       "m5",
		RelationshipType: models.RelationshipParentChild,
	}
	if CanEditRelationship(admin, anchor, scope) {
		t.Error("parent edge onto the managed member must not be editable")
	}

	crossing := models.Relationship{
		FromMemberID:     "m6",
		ToMemberID:       "m9",
		RelationshipType: models.RelationshipParentChild,
	}
	if CanEditRelationship(admin, crossing, scope) {
		t.Error("edge leaving the subtree must not be editable")
	}

	if !CanEditRelationship(superAdmin(), anchor, scope) {
		t.Error("super admin edits every relationship")
	}
	if CanEditRelationship(plainUser(), inside, scope) {
		t.Error("plain user edits no relationship")
	}
}

func TestEditableMemberIDs(t *testing.T) {
	scope := fakeScope{
		"m5": {"m5", "m6"},
		"m8": {"m8"},
	}

	ids, unrestricted := EditableMemberIDs(superAdmin(), scope)
	if !unrestricted || ids != nil {
		t.Errorf("super admin = (%v, %t), want (nil, true)", ids, unrestricted)
	}

	ids, unrestricted = EditableMemberIDs(branchAdmin("m5", "m8"), scope)
	if unrestricted {
		t.Error("branch admin must not be unrestricted")
	}
	for _, want := range []string{"m5", "m6", "m8"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("missing %s from editable set %v", want, ids)
		}
	}

	ids, unrestricted = EditableMemberIDs(plainUser(), scope)
	if unrestricted || len(ids) != 0 {
		t.Errorf("plain user = (%v, %t), want empty set", ids, unrestricted)
	}
}

func TestHasRole(t *testing.T) {
	u := branchAdmin("m5")
	if !HasRole(u, models.RoleBranchAdmin) {
		t.Error("expected BRANCH_ADMIN role")
	}
	if HasRole(u, models.RoleSuperAdmin) {
		t.Error("did not expect SUPER_ADMIN role")
	}
}
