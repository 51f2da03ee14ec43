package rooms

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const inviteQRSize = 320

// InviteURL is the public join link for a room.
func InviteURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/room/" + code
}

// RoomLookup resolves a room by code.
type RoomLookup interface {
	GetRoom(ctx context.Context, code string) (*models.Room, error)
}

// InviteHandler serves a PNG QR code of a room's join link.
type InviteHandler struct {
	rooms   RoomLookup
	baseURL string
}

func NewInviteHandler(rooms RoomLookup, baseURL string) *InviteHandler {
	return &InviteHandler{rooms: rooms, baseURL: baseURL}
}

func (h *InviteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /rooms/{code}/qr", h.serveQR)
}

func (h *InviteHandler) serveQR(w http.ResponseWriter, r *http.Request) {
	code, err := NormalizeCode(r.PathValue("code"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.rooms.GetRoom(r.Context(), code); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("code", code).Msg("invite lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(InviteURL(h.baseURL, code), qrcode.Medium, inviteQRSize)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to encode invite QR")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
