package models

// TreeNode is a member as rendered in the full-tree view
type TreeNode struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	Gender          Gender  `json:"gender"`
	BirthYear       *int    `json:"birthYear"`
	DeathYear       *int    `json:"deathYear"`
	AvatarURL       *string `json:"avatarUrl"`
	Generation      int     `json:"generation"`
	IsBloodRelative bool    `json:"isBloodRelative"`
	BranchName      *string `json:"branchName"`
	IsDeceased      bool    `json:"isDeceased"`
	CanEdit         bool    `json:"canEdit"`
}

// TreeEdge connects two tree nodes; Source is the parent for PARENT_CHILD edges
type TreeEdge struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   RelationshipType `json:"type"`
}

// TreeMetadata carries aggregate counts for a served tree
type TreeMetadata struct {
	TotalNodes    int `json:"totalNodes"`
	TotalEdges    int `json:"totalEdges"`
	MaxGeneration int `json:"maxGeneration"`
}

// TreeData is the response of GET /tree
type TreeData struct {
	Nodes    []TreeNode   `json:"nodes"`
	Edges    []TreeEdge   `json:"edges"`
	Metadata TreeMetadata `json:"metadata"`
}

// TreePath is the response of GET /tree/path: the chain of members linking
// two records
type TreePath struct {
	FromID string     `json:"fromId"`
	ToID   string     `json:"toId"`
	Path   []TreeNode `json:"path"`
}

// SubtreeRoot identifies the member a subtree was rooted at
type SubtreeRoot struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Gender   Gender `json:"gender"`
}

// SubtreeMember is one descendant row with its depth from the root
type SubtreeMember struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Depth    int    `json:"depth"`
}

// SubtreeData is the response of GET /members/{id}/subtree
type SubtreeData struct {
	RootMember   SubtreeRoot     `json:"rootMember"`
	Members      []SubtreeMember `json:"members"`
	TotalMembers int             `json:"totalMembers"`
	MaxDepth     int             `json:"maxDepth"`
}
