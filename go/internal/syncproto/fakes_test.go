package syncproto

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// memStore is an in-memory ResultStore keyed like the real upsert.
type memStore struct {
	mu        sync.Mutex
	results   []models.GameResult
	submits   int
	lists     int
	failNext  int
	release   chan struct{}
	rooms     map[string]uuid.UUID
	submitted chan Submission
}

func newMemStore() *memStore {
	return &memStore{rooms: map[string]uuid.UUID{}}
}

func (s *memStore) Submit(ctx context.Context, sub Submission) (models.GameResult, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return models.GameResult{}, ctx.Err()
		}
	}
	s.mu.Lock()
	s.submits++
	if s.failNext > 0 {
		s.failNext--
		s.mu.Unlock()
		return models.GameResult{}, errors.New("store unavailable")
	}
	s.mu.Unlock()

	r := s.put(sub.RoomID, sub.ParticipantID, sub.GameType, sub.Score)
	if s.submitted != nil {
		s.submitted <- sub
	}
	return r, nil
}

func (s *memStore) put(roomID, participantID uuid.UUID, gameType models.GameType, score int64) models.GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.results {
		if r.RoomID == roomID && r.ParticipantID == participantID && r.GameType == gameType {
			s.results[i].Score = score
			return s.results[i]
		}
	}
	r := models.GameResult{
		ID:            uuid.New(),
		RoomID:        roomID,
		ParticipantID: participantID,
		GameType:      gameType,
		Score:         score,
		CreatedAt:     time.Now(),
	}
	s.results = append(s.results, r)
	return r
}

func (s *memStore) List(_ context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	var out []models.GameResult
	for _, r := range s.results {
		if r.RoomID == roomID && r.GameType == gameType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ResolveRoom(_ context.Context, code string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.rooms[code]
	if !ok {
		return uuid.Nil, errors.New("room not found")
	}
	return id, nil
}

func (s *memStore) counts() (submits, lists int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submits, s.lists
}

// chanFeed hands the watcher a test controlled channel and keeps the
// subscription context.
type chanFeed struct {
	ch  chan []byte
	err error

	mu  sync.Mutex
	ctx context.Context
}

func (f *chanFeed) Subscribe(ctx context.Context) (<-chan []byte, error) {
	f.mu.Lock()
	f.ctx = ctx
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func (f *chanFeed) subscription() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}
