package db

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	RestaurantCandidate string    `json:"restaurant_candidate"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
