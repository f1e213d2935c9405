package models

// RelationshipType distinguishes the two edge kinds in the family graph
type RelationshipType string

const (
	RelationshipParentChild RelationshipType = "PARENT_CHILD"
	RelationshipSpouse      RelationshipType = "SPOUSE"
)

// Relationship is a directed, typed edge between two members
type Relationship struct {
	ID               string           `json:"id"`
	FromMemberID     string           `json:"fromMemberId"`
	FromMemberName   string           `json:"fromMemberName"`
	ToMemberID       string           `json:"toMemberId"`
	ToMemberName     string           `json:"toMemberName"`
	RelationshipType RelationshipType `json:"relationshipType"`
	CreatedAt        string           `json:"createdAt"`
	CanEdit          bool             `json:"canEdit,omitempty"`
}

// CreateParentChildRequest is the payload for POST /relationships/parent-child
type CreateParentChildRequest struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}

// CreateSpouseRequest is the payload for POST /relationships/spouse.
// The pair is symmetric; the server stores both directions.
type CreateSpouseRequest struct {
	Member1ID string `json:"member1Id"`
	Member2ID string `json:"member2Id"`
}

// RelatedMember is one entry in a member's relationship listing
type RelatedMember struct {
	RelationshipID string `json:"relationshipId"`
	MemberID       string `json:"memberId"`
	MemberName     string `json:"memberName"`
	Gender         Gender `json:"gender"`
	CanEdit        bool   `json:"canEdit"`
}

// MemberRelationships is the response of GET /members/{id}/relationships
type MemberRelationships struct {
	MemberID   string          `json:"memberId"`
	MemberName string          `json:"memberName"`
	Parents    []RelatedMember `json:"parents"`
	Spouses    []RelatedMember `json:"spouses"`
	Children   []RelatedMember `json:"children"`
}
