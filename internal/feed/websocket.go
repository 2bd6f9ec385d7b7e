package feed

import (
	"context"
	"fmt"

	"nhooyr.io/websocket"
)

// WebsocketDialer implements Dialer over a websocket transport.
type WebsocketDialer struct{}

func (WebsocketDialer) Dial(ctx context.Context, uri string) (Conn, error) {
	conn, _, err := websocket.Dial(ctx, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}
	return &wsConn{conn: conn}, nil
}

type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadMessage(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c *wsConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
