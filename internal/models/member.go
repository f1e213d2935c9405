package models

// Gender of a family member as served by the backend
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Member represents a family member record
type Member struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	Gender          Gender  `json:"gender"`
	BirthDate       *string `json:"birthDate"`
	DeathDate       *string `json:"deathDate"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	AvatarURL       *string `json:"avatarUrl"`
	IsBloodRelative bool    `json:"isBloodRelative"`
	BranchName      *string `json:"branchName"`
	Generation      int     `json:"generation"`
	IsDeceased      bool    `json:"isDeceased"`
	CanEdit         bool    `json:"canEdit"`
}

// MemberSummary is the compact member shape embedded in relationship listings
type MemberSummary struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Gender          Gender `json:"gender"`
	IsBloodRelative bool   `json:"isBloodRelative"`
	RelationshipID  string `json:"relationshipId,omitempty"`
	CanEdit         bool   `json:"canEdit,omitempty"`
}

// MemberDetail extends Member with relationships and audit metadata
type MemberDetail struct {
	Member
	Notes         *string            `json:"notes"`
	Relationships MemberRelationSet  `json:"relationships"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
	CreatedBy     *MemberAuditAuthor `json:"createdBy"`
}

// MemberRelationSet groups a member's direct relatives by edge type
type MemberRelationSet struct {
	Parents  []MemberSummary `json:"parents"`
	Spouses  []MemberSummary `json:"spouses"`
	Children []MemberSummary `json:"children"`
}

// MemberAuditAuthor identifies the user that created a record
type MemberAuditAuthor struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// CreateMemberRequest is the payload for POST /members
type CreateMemberRequest struct {
	FullName        string   `json:"fullName"`
	Gender          Gender   `json:"gender"`
	BirthDate       *string  `json:"birthDate,omitempty"`
	DeathDate       *string  `json:"deathDate,omitempty"`
	Address         string   `json:"address,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	IsBloodRelative bool     `json:"isBloodRelative"`
	BranchName      *string  `json:"branchName,omitempty"`
	ParentIDs       []string `json:"parentIds,omitempty"`
	SpouseIDs       []string `json:"spouseIds,omitempty"`
}

// UpdateMemberRequest is the payload for PUT /members/{id}
type UpdateMemberRequest struct {
	FullName        string  `json:"fullName"`
	Gender          Gender  `json:"gender"`
	BirthDate       *string `json:"birthDate,omitempty"`
	DeathDate       *string `json:"deathDate,omitempty"`
	Address         string  `json:"address,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Email           string  `json:"email,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	IsBloodRelative bool    `json:"isBloodRelative"`
	BranchName      *string `json:"branchName,omitempty"`
}
