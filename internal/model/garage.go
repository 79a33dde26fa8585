package model

import "time"

// Garage represents one workshop location as stored in the `garages`
// table.  Every domain record (engineers, job cards, inventory parts,
// insurances) belongs to exactly one garage, and the garage id is
// threaded explicitly through every operation instead of being read
// from ambient session state.
//
// Fields:
//  ID          – CHAR(36) UUID primary key.
//  OwnerUserID – user who administers this garage.
//  Name        – display name of the garage.
//  City        – free-text city/location label.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Garage struct {
	ID          string    `json:"id"`            // garages.id
	OwnerUserID uint64    `json:"owner_user_id"` // garages.owner_user_id
	Name        string    `json:"name"`          // garages.name
	City        string    `json:"city"`          // garages.city
	CreatedAt   time.Time `json:"created_at"`    // garages.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // garages.updated_at
}
