package api

import "github.com/shopspring/decimal"

type Member struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	CreatedBy   string   `json:"createdBy"`
	Members     []Member `json:"members"`
	CreatedAt   int64    `json:"createdAt"`
}

type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

// MemberNet is a member's overall standing in a group.
// Positive means the member is owed money.
type MemberNet struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// Debt is one payment in a simplified settle-up plan.
type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	MemberIDs   []string `json:"memberIds"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

// GetGroupResponse carries the group, every member's net and a simplified set
// of payments that would settle the group.
type GetGroupResponse struct {
	Group Group       `json:"group"`
	Nets  []MemberNet `json:"nets"`
	Debts []Debt      `json:"debts"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

// EditGroupRequest replaces the group's description and image. An empty Name
// keeps the current one.
type EditGroupRequest struct {
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type EditGroupResponse struct {
	Group Group `json:"group"`
}

type JoinGroupRequest struct {
	GroupID string `json:"groupId"`
}

type JoinGroupResponse struct {
	Group Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type RemoveMemberResponse struct{}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}
