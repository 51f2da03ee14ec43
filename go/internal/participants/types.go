package participants

// CreateParticipantRequest carries the fields of a new participant.
type CreateParticipantRequest struct {
	Name                string `json:"name"`
	RestaurantCandidate string `json:"restaurant_candidate"`
}

// UpdateParticipantRequest is a partial update; nil fields keep their value.
type UpdateParticipantRequest struct {
	Name                *string `json:"name,omitempty"`
	RestaurantCandidate *string `json:"restaurant_candidate,omitempty"`
}
