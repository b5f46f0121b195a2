package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"nhooyr.io/websocket"

	"cardroom.io/holdem/store"
)

// watchTable streams snapshot updates for a table over a websocket. The
// updates come from the NATS subject the manager publishes to.
func (s *Server) watchTable(c *gin.Context) {
	code := c.Param("code")

	table, err := s.manager.GetTable(c.Request.Context(), code)
	if err != nil {
		if err == store.ErrTableNotFound {
			c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: "Table not found"})
			return
		}
		s.reportError(c, err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		restLogger.Error().Str("tableCode", code).Msgf("Websocket accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	ctx := c.Request.Context()

	// current snapshot first, then live updates
	snapshot, err := jsoniter.Marshal(table)
	if err == nil {
		if err := conn.Write(ctx, websocket.MessageText, snapshot); err != nil {
			return
		}
	}

	updates := make(chan []byte, 16)
	sub, err := s.broadcaster.SubscribeUpdates(code, func(data []byte) {
		select {
		case updates <- data:
		default:
			// slow client; drop the update, the next snapshot supersedes it
		}
	})
	if err != nil {
		restLogger.Error().Str("tableCode", code).Msgf("Unable to subscribe to updates: %v", err)
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	if sub != nil {
		defer sub.Unsubscribe()
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case data := <-updates:
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}
