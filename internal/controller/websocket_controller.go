package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessboard/internal/model"
	"github.com/benbeisheim/chessboard/internal/service"
	"github.com/benbeisheim/chessboard/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	observerID, _ := c.Locals("observerID").(string)
	flipped, _ := c.Locals("flipped").(bool)

	if err := wsc.gameService.RegisterConnection(gameID, observerID, c, flipped); err != nil {
		log.Warnf("game %s: failed to register observer %s: %v", gameID, observerID, err)
		// Not registered, so nothing else writes to c.
		if err := c.WriteJSON(ws.NewErrorMessage(err.Error())); err != nil {
			log.Debugf("failed to send error: %v", err)
		}
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, observerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("game %s: read error from %s: %v", gameID, observerID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, observerID, fmt.Sprintf("malformed message: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Debugf("game %s: rejected %s from %s: %v", gameID, msg.Type, observerID, err)
			wsc.sendError(gameID, observerID, err.Error())
		}
	}
}

// handleMessage applies a client message. The resulting state reaches every
// observer through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, model.SimpleMove{From: move.From, To: move.To})
		return err
	case ws.MessageTypeUndo:
		_, err := wsc.gameService.UndoMove(gameID)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError goes through the game so that it never races a broadcast on the
// same connection.
func (wsc *WebSocketController) sendError(gameID, observerID string, errorMsg string) {
	if err := wsc.gameService.SendToObserver(gameID, observerID, ws.NewErrorMessage(errorMsg)); err != nil {
		log.Debugf("failed to send error: %v", err)
	}
}
