package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/rs/zerolog/log"
)

// RoomsRepository defines what the app layer needs from storage
type RoomsRepository interface {
	CreateRoom(ctx context.Context, code, name string) (*models.Room, error)
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	JoinRoom(ctx context.Context, code string, participantID uuid.UUID, capacity int) (*models.Room, error)
	LeaveRoom(ctx context.Context, code string, participantID uuid.UUID) error
}

// CodeGenerator returns a fresh room code of the given length.
type CodeGenerator func(n int) (string, error)

// App handles room business logic
type App struct {
	repo    RoomsRepository
	cfg     Config
	newCode CodeGenerator
}

func NewApp(repo RoomsRepository, cfg Config) *App {
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = def.CodeLength
	}
	if cfg.CodeAttempts <= 0 {
		cfg.CodeAttempts = def.CodeAttempts
	}
	return &App{repo: repo, cfg: cfg, newCode: GenerateCode}
}

// WithCodeGenerator replaces the random code source.
func (a *App) WithCodeGenerator(gen CodeGenerator) *App {
	a.newCode = gen
	return a
}

// CreateRoom creates a room. A caller supplied code is used as is and fails
// with ErrCodeTaken on collision; an empty code is generated, retrying on
// collision a bounded number of times.
func (a *App) CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultRoomName
	}

	if strings.TrimSpace(req.Code) != "" {
		code, err := NormalizeCode(req.Code)
		if err != nil {
			return nil, err
		}
		return a.create(ctx, code, name)
	}

	for attempt := 1; attempt <= a.cfg.CodeAttempts; attempt++ {
		code, err := a.newCode(a.cfg.CodeLength)
		if err != nil {
			return nil, err
		}
		room, err := a.create(ctx, code, name)
		if errors.Is(err, ErrCodeTaken) {
			log.Warn().Str("code", code).Int("attempt", attempt).Msg("generated room code collided")
			continue
		}
		return room, err
	}
	return nil, fmt.Errorf("%w: no free code after %d attempts", ErrCodeTaken, a.cfg.CodeAttempts)
}

func (a *App) create(ctx context.Context, code, name string) (*models.Room, error) {
	room, err := a.repo.CreateRoom(ctx, code, name)
	if err != nil {
		return nil, err
	}
	log.Info().Str("room_id", room.ID.String()).Str("code", room.Code).Msg("created room")
	return room, nil
}

func (a *App) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	return a.repo.GetRoomByCode(ctx, code)
}

func (a *App) ListRooms(ctx context.Context) ([]models.Room, error) {
	return a.repo.ListRooms(ctx)
}

func (a *App) JoinRoom(ctx context.Context, code string, participantID uuid.UUID) (*models.Room, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	room, err := a.repo.JoinRoom(ctx, code, participantID, a.cfg.Capacity)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("room_id", room.ID.String()).
		Str("participant_id", participantID.String()).
		Int("members", len(room.Members)).
		Msg("participant joined room")
	return room, nil
}

func (a *App) LeaveRoom(ctx context.Context, code string, participantID uuid.UUID) error {
	code, err := NormalizeCode(code)
	if err != nil {
		return err
	}
	if err := a.repo.LeaveRoom(ctx, code, participantID); err != nil {
		return err
	}
	log.Info().Str("code", code).Str("participant_id", participantID.String()).Msg("participant left room")
	return nil
}

// SelectGame picks the game every member of the room plays. It does not
// consult storage: the choice depends on the code alone.
func (a *App) SelectGame(code string) models.GameType {
	return game.SelectGame(code)
}
