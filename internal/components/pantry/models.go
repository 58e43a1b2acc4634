package pantry

import (
	"time"

	"github.com/google/uuid"
)

type (
	// FoodItem is one entry in a user's pantry. Items live strictly inside
	// their owner: they are only addressable through the owning user id and
	// disappear when the user does.
	FoodItem struct {
		ID        uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}

	AddItemIn struct {
		Name string `json:"name"`
	}

	// UpdateItemIn enumerates the mutable fields of a food item. Form fields
	// outside this struct are dropped instead of merged into the record.
	UpdateItemIn struct {
		Name *string `json:"name,omitempty"`
	}
)
