package models

// UserStatus is the account lifecycle state
type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

// RoleType is the set of assignable roles
type RoleType string

const (
	RoleSuperAdmin  RoleType = "SUPER_ADMIN"
	RoleBranchAdmin RoleType = "BRANCH_ADMIN"
	RoleUser        RoleType = "USER"
)

// UserRole is a single role grant, optionally scoped to a managed member's
// subtree when the role is BRANCH_ADMIN
type UserRole struct {
	ID                      string             `json:"id"`
	Role                    RoleType           `json:"role"`
	ManagedMemberID         *string            `json:"managedMemberId"`
	ManagedMemberName       *string            `json:"managedMemberName"`
	ManagedMemberGeneration *int               `json:"managedMemberGeneration,omitempty"`
	CreatedAt               string             `json:"createdAt,omitempty"`
	CreatedBy               *MemberAuditAuthor `json:"createdBy,omitempty"`
}

// UserPermissions is the server-computed capability summary on a user profile
type UserPermissions struct {
	CanEditMembers   bool `json:"canEditMembers"`
	CanViewAuditLogs bool `json:"canViewAuditLogs"`
	CanManageUsers   bool `json:"canManageUsers"`
}

// User represents an application account with its role grants
type User struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	FullName    string           `json:"fullName"`
	Status      UserStatus       `json:"status"`
	Roles       []UserRole       `json:"roles"`
	CreatedAt   string           `json:"createdAt,omitempty"`
	Permissions *UserPermissions `json:"permissions,omitempty"`
}

// AddUserRoleRequest is the payload for POST /users/{id}/roles
type AddUserRoleRequest struct {
	Role            RoleType `json:"role"`
	ManagedMemberID *string  `json:"managedMemberId,omitempty"`
}

// RoleAssignment is one entry of a full role replacement
type RoleAssignment struct {
	Role            RoleType `json:"role"`
	ManagedMemberID *string  `json:"managedMemberId,omitempty"`
}

// UpdateUserRolesRequest is the payload for PUT /users/{id}/roles
type UpdateUserRolesRequest struct {
	Roles []RoleAssignment `json:"roles"`
}

// UserRolesResponse is the response of GET /users/{id}/roles
type UserRolesResponse struct {
	UserID    string     `json:"userId"`
	UserEmail string     `json:"userEmail"`
	Roles     []UserRole `json:"roles"`
}
