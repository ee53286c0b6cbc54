// Package warrants maintains the WebSocket connection to the warrants
// monitoring endpoint and routes its pushes into the fan-out store.
package warrants

import (
	"context"
	"encoding/json"
	"time"

	"omnimarket/internal/state"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client handles the warrants monitoring WebSocket connection. After an
// unexpected close it reconnects with capped exponential backoff; exhausting
// the attempt budget is logged but never fatal.
type Client struct {
	url         string
	backoffBase time.Duration
	backoffCap  time.Duration
	maxAttempts int

	conn   *websocket.Conn
	fanout *state.Fanout
	logger *zap.Logger
}

func NewClient(url string, backoffBase, backoffCap time.Duration, maxAttempts int,
	fanout *state.Fanout, logger *zap.Logger) *Client {
	if backoffBase <= 0 {
		backoffBase = time.Second
	}
	if backoffCap <= 0 {
		backoffCap = 30 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	return &Client{
		url:         url,
		backoffBase: backoffBase,
		backoffCap:  backoffCap,
		maxAttempts: maxAttempts,
		fanout:      fanout,
		logger:      logger,
	}
}

// Connect establishes the WebSocket connection. It does not start the listener.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Error("failed to connect to warrants stream", zap.String("url", c.url), zap.Error(err))
		return err
	}
	c.conn = conn
	c.fanout.SetConnected(true)
	c.logger.Info("warrants stream connected", zap.String("url", c.url))
	return nil
}

// Listen reads pushes until the context is cancelled. On a read error it
// attempts to reconnect up to the attempt budget; when the budget is
// exhausted the listener exits and the connection flag is cleared.
func (c *Client) Listen(ctx context.Context) {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.fanout.SetConnected(false)

			if ctx.Err() != nil {
				return
			}
			c.logger.Error("warrants stream read error", zap.Error(err))

			if !c.reconnect(ctx) {
				c.logger.Warn("warrants stream reconnect attempts exhausted")
				return
			}
			continue // resume with the new connection
		}

		c.handleMessage(msg)
	}
}

// reconnect retries the dial with exponential backoff starting at
// backoffBase and capped at backoffCap. It reports whether a connection was
// re-established within the attempt budget.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.backoffBase

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		newConn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err == nil {
			if c.conn != nil {
				_ = c.conn.Close()
			}
			c.conn = newConn
			c.fanout.SetConnected(true)
			c.logger.Info("warrants stream reconnected", zap.Int("attempt", attempt))
			return true
		}

		c.logger.Warn("warrants stream reconnect failed",
			zap.Int("attempt", attempt), zap.Error(err))

		delay *= 2
		if delay > c.backoffCap {
			delay = c.backoffCap
		}
	}

	return false
}

// handleMessage parses the envelope and dispatches it to the fan-out store.
// Unknown message types are logged and dropped.
func (c *Client) handleMessage(msg []byte) {
	var env envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		c.logger.Warn("failed to parse warrants push", zap.Error(err))
		return
	}

	switch env.Type {
	case TypeWarrantUpdate, TypeAlertTriggered, TypeTradingSignal:
		c.fanout.HandleMessage(state.Message{
			Type:    env.Type,
			Symbol:  env.Symbol,
			Payload: env.Data,
		})
	default:
		c.logger.Debug("ignoring warrants push with unknown type", zap.String("type", env.Type))
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
