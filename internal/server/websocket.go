package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"brasserie/internal/analyst"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsConnection maintains the WebSocket connection with one client.
type wsConnection struct {
	conn    *websocket.Conn
	send    chan []byte
	mu      sync.Mutex
	analyst *analyst.Analyst
	server  *Server
}

// analystQuery is one incoming chat message.
type analystQuery struct {
	Query string `json:"query"`
}

// analystChunk is one streamed piece of the model's answer. Done marks the
// final message for a query.
type analystChunk struct {
	Chunk string `json:"chunk,omitempty"`
	Done  bool   `json:"done,omitempty"`
}

// handleWebSocket upgrades the connection and starts the pumps.
func (s *Server) handleWebSocket(c *gin.Context) {
	if s.analyst == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analyst is not configured"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Error("failed to upgrade connection")
		return
	}

	wsConn := &wsConnection{
		conn:    conn,
		send:    make(chan []byte, 256),
		analyst: s.analyst,
		server:  s,
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the analyst.
func (c *wsConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.WithError(err).Error("websocket error")
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection.
func (c *wsConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage runs one analyst query, streaming the answer back.
func (c *wsConnection) handleMessage(message []byte) {
	var q analystQuery
	if err := json.Unmarshal(message, &q); err != nil {
		c.sendError("invalid message: " + err.Error())
		return
	}
	if q.Query == "" {
		c.sendError("query must not be empty")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		err := c.analyst.Stream(ctx, q.Query, func(ctx context.Context, chunk []byte) error {
			c.sendChunk(analystChunk{Chunk: string(chunk)})
			return nil
		})
		if err != nil {
			c.sendError("analysis failed: " + err.Error())
			return
		}
		c.sendChunk(analystChunk{Done: true})
	}()
}

// sendChunk sends one streamed answer piece to the client.
func (c *wsConnection) sendChunk(chunk analystChunk) {
	data, err := json.Marshal(chunk)
	if err != nil {
		c.server.log.WithError(err).Error("error marshaling chunk")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		c.server.log.Warn("websocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client.
func (c *wsConnection) sendError(message string) {
	data, _ := json.Marshal(map[string]string{"error": message})

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		c.server.log.Warn("websocket buffer full, dropping error message")
	}
}
