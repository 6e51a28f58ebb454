package models

// Role is a member's permission level inside a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is one membership record of a group.
type Member struct {
	UserID   string
	Role     Role
	JoinedAt int64
}

// Group represents a named set of users whose expenses are tracked together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	Description string
	ImageURL    string

	// CreatedBy is the user who created the group. They start as its only admin.
	CreatedBy string

	// Members is ordered by join time.
	Members []Member

	// CreatedAt is the Unix millisecond timestamp when the group was created.
	CreatedAt int64
}

// Member returns userID's membership record, if any.
func (g *Group) Member(userID string) (Member, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// IsMember reports whether userID currently belongs to the group.
func (g *Group) IsMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// IsAdmin reports whether userID is an admin of the group.
func (g *Group) IsAdmin(userID string) bool {
	m, ok := g.Member(userID)
	return ok && m.Role == RoleAdmin
}

// MemberIDs returns the user IDs of all members in order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
