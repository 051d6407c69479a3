package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	ws "github.com/wricardo/quoridor/transport/websocket"
)

// Watch follows a game over the server's websocket feed, calling onState
// for every position pushed. It returns nil once the game is over, or the
// context's error when ctx is canceled first.
func (c *Client) Watch(ctx context.Context, id string, onState func(engine.State)) error {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("partie", id)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.player+":"+c.secret)))

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return statusError(resp)
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	log.Debug().Str("game", id).Msg("watching game")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}

		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("skipping malformed update")
			continue
		}
		if msg.State != nil {
			onState(*msg.State)
		}
		if msg.Event == ws.EventGameOver {
			return nil
		}
	}
}
