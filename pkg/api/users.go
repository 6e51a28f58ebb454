package api

// User is a public user profile.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"imageUrl,omitempty"`
	PaymentHandle string `json:"paymentHandle,omitempty"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// UpdateProfileRequest edits the caller's profile. Empty Name and ImageURL keep
// the current value. A nil PaymentHandle keeps it; an empty one clears it.
type UpdateProfileRequest struct {
	Name          string  `json:"name,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	PaymentHandle *string `json:"paymentHandle,omitempty"`
}

type UpdateProfileResponse struct {
	User User `json:"user"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type SearchUsersResponse struct {
	Users []User `json:"users"`
}

type GetContactsRequest struct{}

// GetContactsResponse lists people the caller shares personal expenses with
// and the groups they belong to, each sorted by name.
type GetContactsResponse struct {
	Users  []User         `json:"users"`
	Groups []GroupSummary `json:"groups"`
}
