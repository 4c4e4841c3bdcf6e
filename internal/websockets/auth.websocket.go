package websockets

import (
	"context"
	"time"

	"inventory/internal/events"
)

const AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second

// startAuthTimeout closes the connection if the client has not authenticated in time.
func (c *Client) startAuthTimeout() {
	log := c.Manager.log.Function("startAuthTimeout")

	time.AfterFunc(AUTH_HANDSHAKE_TIMEOUT, func() {
		if c.status() != STATUS_UNAUTHENTICATED {
			return
		}

		log.Warn(
			"Client failed to authenticate within timeout, disconnecting",
			"clientID", c.ID,
			"timeout", AUTH_HANDSHAKE_TIMEOUT,
		)
		c.deliver(newMessage(events.AUTH_FAILURE, SYSTEM_CHANNEL, "authentication_timeout", map[string]any{
			"reason": "Authentication timeout",
		}))

		time.Sleep(100 * time.Millisecond)
		c.closeConnection()
	})
}

func (c *Client) sendAuthRequest() error {
	log := c.Manager.log.Function("sendAuthRequest")

	authRequest := newMessage(events.AUTH_REQUEST, SYSTEM_CHANNEL, "authenticate", nil)
	if err := c.Connection.WriteJSON(authRequest); err != nil {
		return log.Err("failed to send auth request", err, "clientID", c.ID)
	}

	return nil
}

func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.status() != STATUS_UNAUTHENTICATED {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		c.sendAuthFailure("Invalid token format")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), WRITE_TIMEOUT)
	defer cancel()

	user, err := c.Manager.auth.Authenticate(ctx, token)
	if err != nil {
		log.Info("WebSocket authentication failed", "clientID", c.ID, "error", err.Error())
		c.sendAuthFailure("Authentication failed")
		return
	}

	c.mutex.Lock()
	c.Status = STATUS_AUTHENTICATED
	c.UserID = user.ID
	c.mutex.Unlock()

	log.Info("WebSocket client authenticated", "clientID", c.ID, "userID", user.ID)

	success := newMessage(events.AUTH_SUCCESS, SYSTEM_CHANNEL, "authenticated", map[string]any{
		"userId": user.ID.String(),
		"role":   string(user.Role),
	})
	success.UserID = user.ID.String()
	c.deliver(success)

	c.Manager.pushActivity(c)
}

func (c *Client) sendAuthFailure(reason string) {
	c.deliver(newMessage(events.AUTH_FAILURE, SYSTEM_CHANNEL, "authentication_failed", map[string]any{
		"reason": reason,
	}))

	c.Manager.log.Function("sendAuthFailure").
		Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	time.AfterFunc(100*time.Millisecond, c.closeConnection)
}

func (c *Client) handleUnauthenticatedMessage(message Message) {
	c.Manager.log.Function("handleUnauthenticatedMessage").Warn(
		"Blocking message from unauthenticated client",
		"clientID", c.ID,
		"messageType", message.Type,
	)

	c.deliver(newMessage(events.AUTH_FAILURE, SYSTEM_CHANNEL, "authentication_required", map[string]any{
		"reason": "Authentication required",
	}))
}
