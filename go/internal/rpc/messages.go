package rpc

import (
	"encoding/json"
	"time"
)

type Participant struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	RestaurantCandidate string    `json:"restaurantCandidate"`
	CreatedAt           time.Time `json:"createdAt"`
}

type Member struct {
	Participant Participant `json:"participant"`
	JoinedAt    time.Time   `json:"joinedAt"`
}

type Room struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Members   []Member  `json:"members"`
}

type GameResult struct {
	ID              string          `json:"id"`
	RoomID          string          `json:"roomId"`
	ParticipantID   string          `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	GameType        string          `json:"gameType"`
	Score           int64           `json:"score"`
	Details         json.RawMessage `json:"details,omitempty"`
	// CreatedAt is nil when the store did not report a timestamp.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type LeaderboardEntry struct {
	Rank   int        `json:"rank"`
	Result GameResult `json:"result"`
}

type CreateRoomRequest struct {
	// Code is generated when empty.
	Code string `json:"code"`
	Name string `json:"name"`
}

type CreateRoomResponse struct {
	Room Room `json:"room"`
}

type GetRoomRequest struct {
	Code string `json:"code"`
}

type GetRoomResponse struct {
	Room Room `json:"room"`
}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type JoinRoomRequest struct {
	Code          string `json:"code"`
	ParticipantID string `json:"participantId"`
}

type JoinRoomResponse struct {
	Room Room `json:"room"`
}

type LeaveRoomRequest struct {
	Code          string `json:"code"`
	ParticipantID string `json:"participantId"`
}

type LeaveRoomResponse struct{}

type SelectGameRequest struct {
	Code string `json:"code"`
}

type SelectGameResponse struct {
	GameType string `json:"gameType"`
	Route    string `json:"route"`
}

type CreateParticipantRequest struct {
	Name                string `json:"name"`
	RestaurantCandidate string `json:"restaurantCandidate"`
}

type CreateParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type GetParticipantRequest struct {
	ID string `json:"id"`
}

type GetParticipantResponse struct {
	Participant Participant `json:"participant"`
}

// UpdateParticipantRequest is a partial update: nil fields are untouched.
type UpdateParticipantRequest struct {
	ID                  string  `json:"id"`
	Name                *string `json:"name,omitempty"`
	RestaurantCandidate *string `json:"restaurantCandidate,omitempty"`
}

type UpdateParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type DeleteParticipantRequest struct {
	ID string `json:"id"`
}

type DeleteParticipantResponse struct{}

type SubmitResultRequest struct {
	RoomID        string          `json:"roomId"`
	ParticipantID string          `json:"participantId"`
	GameType      string          `json:"gameType"`
	Score         int64           `json:"score"`
	Details       json.RawMessage `json:"details,omitempty"`
}

type SubmitResultResponse struct {
	Result GameResult `json:"result"`
	// Created is false when an earlier record was updated in place.
	Created bool `json:"created"`
}

type ListResultsRequest struct {
	RoomID   string `json:"roomId"`
	GameType string `json:"gameType"`
}

type ListResultsResponse struct {
	Results []GameResult `json:"results"`
}

type GetLeaderboardRequest struct {
	RoomID   string `json:"roomId"`
	GameType string `json:"gameType"`
}

type GetLeaderboardResponse struct {
	Order   string             `json:"order"`
	Entries []LeaderboardEntry `json:"entries"`
}
