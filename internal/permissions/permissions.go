package permissions

import (
	"lineagehub/internal/models"
)

// SubtreeResolver answers which members fall under a branch admin's managed
// root. Typically backed by graph.Graph or a fetched SubtreeData, so scope
// checks don't need an extra round trip.
type SubtreeResolver interface {
	// SubtreeIDs returns every member id in the subtree rooted at rootID,
	// including rootID itself and attached spouses.
	SubtreeIDs(rootID string) []string
}

// IsSuperAdmin reports whether any of the user's roles is SUPER_ADMIN
func IsSuperAdmin(user models.User) bool {
	return HasRole(user, models.RoleSuperAdmin)
}

// IsBranchAdmin reports whether any of the user's roles is BRANCH_ADMIN
func IsBranchAdmin(user models.User) bool {
	return HasRole(user, models.RoleBranchAdmin)
}

// HasRole reports whether the user holds a role of the given type
func HasRole(user models.User, role models.RoleType) bool {
	for _, r := range user.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// ManagedMemberIDs collects the managed member ids across the user's
// BRANCH_ADMIN roles. Roles without a managed member id carry no scope and
// are skipped.
func ManagedMemberIDs(user models.User) []string {
	var ids []string
	for _, r := range user.Roles {
		if r.Role == models.RoleBranchAdmin && r.ManagedMemberID != nil && *r.ManagedMemberID != "" {
			ids = append(ids, *r.ManagedMemberID)
		}
	}
	return ids
}

// CanEditMember reports whether the user may edit the given member.
//
// SUPER_ADMIN edits everyone. BRANCH_ADMIN edits members inside any of their
// managed subtrees (root inclusive). Plain USER gets false: the self-edit
// policy is server-defined, so the local check stays conservative and the
// served canEdit flag remains authoritative for mutating actions.
func CanEditMember(user models.User, memberID string, scope SubtreeResolver) bool {
	if IsSuperAdmin(user) {
		return true
	}
	if !IsBranchAdmin(user) {
		return false
	}
	for _, rootID := range ManagedMemberIDs(user) {
		if inSubtree(scope, rootID, memberID) {
			return true
		}
	}
	return false
}

// CanEditRelationship reports whether the user may delete or modify a
// relationship edge. A branch admin may act on edges whose both endpoints lie
// in a managed subtree, but never on the parent edge pointing at the managed
// member itself (that edge anchors their scope).
func CanEditRelationship(user models.User, rel models.Relationship, scope SubtreeResolver) bool {
	if IsSuperAdmin(user) {
		return true
	}
	if !IsBranchAdmin(user) {
		return false
	}
	for _, rootID := range ManagedMemberIDs(user) {
		if rel.RelationshipType == models.RelationshipParentChild && rel.ToMemberID == rootID {
			continue
		}
		if inSubtree(scope, rootID, rel.FromMemberID) && inSubtree(scope, rootID, rel.ToMemberID) {
			return true
		}
	}
	return false
}

// EditableMemberIDs returns the set of member ids the user may edit. For
// SUPER_ADMIN it returns (nil, true): the set is unrestricted and callers
// should skip per-member checks entirely.
func EditableMemberIDs(user models.User, scope SubtreeResolver) (ids map[string]struct{}, unrestricted bool) {
	if IsSuperAdmin(user) {
		return nil, true
	}
	ids = make(map[string]struct{})
	if !IsBranchAdmin(user) {
		return ids, false
	}
	for _, rootID := range ManagedMemberIDs(user) {
		for _, id := range scope.SubtreeIDs(rootID) {
			ids[id] = struct{}{}
		}
	}
	return ids, false
}

func inSubtree(scope SubtreeResolver, rootID, memberID string) bool {
	if rootID == memberID {
		return true
	}
	for _, id := range scope.SubtreeIDs(rootID) {
		if id == memberID {
			return true
		}
	}
	return false
}
