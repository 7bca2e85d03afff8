package models

// PaginatedUsersResponse is the response structure for the community listing.
type PaginatedUsersResponse struct {
	Data       []ContactCard  `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginatedCropsResponse is the response structure for crop listings.
type PaginatedCropsResponse struct {
	Data       []Crop         `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo holds metadata for paginated responses.
type PaginationInfo struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// ContactCard is the public view of a user, without email or timestamps.
type ContactCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	State       string `json:"state"`
	District    string `json:"district"`
	Taluk       string `json:"taluk"`
	PhoneNumber string `json:"phone_number"`
}

// NewContactCard returns the public view of u.
func NewContactCard(u User) ContactCard {
	return ContactCard{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		State:       u.State,
		District:    u.District,
		Taluk:       u.Taluk,
		PhoneNumber: u.PhoneNumber,
	}
}
