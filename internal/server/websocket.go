package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are enforced by the CORS layer for HTTP; the stream
		// endpoint accepts any origin.
		return true
	},
}

// StreamRequest is one spotting request over the stream endpoint. Image
// bytes arrive base64-encoded inside the JSON frame.
type StreamRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Image     []byte `json:"image"`
}

// StreamResponse is one reply frame.
type StreamResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Status    string      `json:"status"` // "completed" or "error"
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
}

const streamReadTimeout = 60 * time.Second

// streamHandler upgrades the connection and serves spotting requests until
// the client disconnects.
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("stream connection established", "remote_addr", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("stream read error", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		if msgType != websocket.TextMessage {
			continue
		}
		s.handleStreamFrame(conn, data)
	}
}

func (s *Server) handleStreamFrame(conn *websocket.Conn, data []byte) {
	var req StreamRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendStreamResponse(conn, StreamResponse{Status: "error", Error: "invalid request frame"})
		return
	}
	if len(req.Image) == 0 {
		s.sendStreamResponse(conn, StreamResponse{
			RequestID: req.RequestID, Status: "error", Error: "no image data",
		})
		return
	}

	img, _, err := image.Decode(bytes.NewReader(req.Image))
	if err != nil {
		s.sendStreamResponse(conn, StreamResponse{
			RequestID: req.RequestID, Status: "error", Error: "invalid image format",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.TimeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	res, err := s.pipeline.Detect(ctx, img)
	if err != nil {
		spotRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendStreamResponse(conn, StreamResponse{
			RequestID: req.RequestID, Status: "error", Error: err.Error(),
		})
		return
	}
	spotRequestsTotal.WithLabelValues("websocket", "success").Inc()
	spotProcessingDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())
	spotRegionsAccepted.WithLabelValues("websocket").Observe(float64(len(res.Regions)))

	s.sendStreamResponse(conn, StreamResponse{
		RequestID: req.RequestID, Status: "completed", Result: res,
	})
}

func (s *Server) sendStreamResponse(conn *websocket.Conn, resp StreamResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("marshaling stream response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Warn("writing stream response", "error", err)
	}
}
