package model

// Venue is read-only catalog data; OwnerID drives check-in authorization
// for organizers.
type Venue struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	OwnerID int    `json:"owner_id" db:"owner_id"`
}
