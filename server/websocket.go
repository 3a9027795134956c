package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/export"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// WebSocket message types sent by the server.
const (
	MessageDone  = "done"
	MessageError = "error"
)

const wsReadLimit = 64 << 10

// WSRequest is one operation call over the WebSocket. Params holds the same
// names the HTTP route takes as path segments and query values.
type WSRequest struct {
	ID        string            `json:"id,omitempty"`
	Operation string            `json:"operation"`
	Params    map[string]string `json:"params,omitempty"`
}

// WSResponse answers a WSRequest. A successful call yields a message typed
// with the operation name carrying the result in Data, followed by a "done"
// message; a failed call yields a single "error" message.
type WSResponse struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	logger := s.logger.With(zap.String("request_id", RequestID(r.Context())), zap.String("remote", r.RemoteAddr))
	logger.Info("websocket connection accepted")

	for {
		var msg WSRequest
		if err := conn.ReadJSON(&msg); err != nil {
			// A message that is not a WSRequest is rejected; the connection stays open.
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if werr := conn.WriteJSON(WSResponse{Type: MessageError, Error: "malformed message: " + err.Error(), Status: http.StatusBadRequest}); werr != nil {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			logger.Info("websocket connection closed")
			return
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}

		for _, resp := range s.serveMessage(r.Context(), msg) {
			if err := conn.WriteJSON(resp); err != nil {
				logger.Warn("websocket write failed", zap.String("message_id", msg.ID), zap.Error(err))
				return
			}
		}
	}
}

// serveMessage runs one WebSocket call and returns the messages to send back.
func (s *Server) serveMessage(parent context.Context, msg WSRequest) []WSResponse {
	ctx, cancel := context.WithTimeout(parent, s.cfg.QueryTimeout)
	defer cancel()

	started := time.Now()
	body, contentType, err := s.dispatch(ctx, msg.Operation, request.Params(msg.Params))
	if err != nil {
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("websocket call failed", zap.String("message_id", msg.ID), zap.String("operation", msg.Operation), zap.Error(err))
		}
		return []WSResponse{{ID: msg.ID, Type: MessageError, Error: err.Error(), Status: status}}
	}

	data := json.RawMessage(body)
	if contentType != export.ContentTypeJSON {
		// Non-JSON renderings travel as a JSON string.
		quoted, err := json.Marshal(string(body))
		if err != nil {
			return []WSResponse{{ID: msg.ID, Type: MessageError, Error: err.Error(), Status: http.StatusInternalServerError}}
		}
		data = quoted
	}

	s.logger.Debug("websocket call served",
		zap.String("message_id", msg.ID),
		zap.String("operation", msg.Operation),
		zap.Duration("duration", time.Since(started)))
	return []WSResponse{
		{ID: msg.ID, Type: msg.Operation, Data: data},
		{ID: msg.ID, Type: MessageDone},
	}
}
