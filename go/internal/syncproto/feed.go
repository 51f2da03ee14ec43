package syncproto

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ChangeFeed delivers raw change notifications for the result table. The
// channel is closed when the subscription ends.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan []byte, error)
}

// WebSocketFeed subscribes to the gateway's change feed.
type WebSocketFeed struct {
	// GatewayURL is the gateway base, e.g. ws://localhost:8081.
	GatewayURL string
	Events     []string
	Dialer     *websocket.Dialer
}

func NewWebSocketFeed(gatewayURL string) *WebSocketFeed {
	return &WebSocketFeed{
		GatewayURL: gatewayURL,
		Events:     []string{"INSERT", "UPDATE"},
		Dialer:     websocket.DefaultDialer,
	}
}

func (f *WebSocketFeed) endpoint() (string, error) {
	u, err := url.Parse(f.GatewayURL)
	if err != nil {
		return "", fmt.Errorf("parse gateway url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/changes"
	q := url.Values{}
	q.Set("table", "game_results")
	if len(f.Events) > 0 {
		q.Set("events", strings.Join(f.Events, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Subscribe dials the gateway. Frames are forwarded until ctx is done or the
// connection fails; reconnecting is left to the caller.
func (f *WebSocketFeed) Subscribe(ctx context.Context) (<-chan []byte, error) {
	endpoint, err := f.endpoint()
	if err != nil {
		return nil, err
	}
	dialer := f.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial change feed: %w", err)
	}

	out := make(chan []byte, 16)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(out)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Str("url", endpoint).Msg("change feed closed")
				}
				return
			}
			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
