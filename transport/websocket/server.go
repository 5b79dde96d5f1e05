package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
	"nhooyr.io/websocket"
)

var ErrUnknownAction = errors.New("unknown action")

type gameUseCase interface {
	InitGame(ctx context.Context, playerID, userName string, userTurn entity.Turn, gameType entity.GameType, difficulty entity.Difficulty) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID, userName string) (*entity.Game, error)
	SendAction(ctx context.Context, gameID, playerID string, action entity.Action) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID, playerID string, userTurn entity.Turn) (*entity.Game, error)
	QuitGame(ctx context.Context, gameID, playerID string) (*entity.Player, error)
	HandleDisconnect(ctx context.Context, playerID string) (*entity.Player, error)
}

type handlerFunc func(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error)

// Server exposes the game protocol over websocket. Each accepted connection
// gets an opaque player id that doubles as the player's identity for the
// lifetime of the connection.
type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	validate    *validator.Validate

	connectionsMutex sync.RWMutex
	connections      map[string]*websocket.Conn

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger,
		gameUseCase: gameUseCase,
		validate:    validator.New(),

		connections: make(map[string]*websocket.Conn),
		handlers:    make(map[string]handlerFunc),
	}

	server.handlers[actionInitGame] = server.handleInitGame
	server.handlers[actionJoinGame] = server.handleJoinGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionResetGame] = server.handleResetGame
	server.handlers[actionQuitGame] = server.handleQuitGame

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	serveMux := http.NewServeMux()
	serveMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      serveMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades one connection and pumps its messages until it
// drops. A dropped connection is handled like an explicit quit.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}
	defer conn.CloseNow() //nolint: errcheck // connection is already going away

	playerID := uuid.NewString()
	log = log.With("playerID", playerID)

	that.registerConnection(playerID, conn)
	defer that.unregisterConnection(playerID)

	player := &entity.Player{ID: playerID, Type: entity.PlayerTypeHuman}
	if err = that.sendMessage(ctx, conn, actionConnect, &ResponsePayload{Player: player}); err != nil {
		log.Error("failed to send connect message", "error", err)
		return
	}

	log.Info("websocket connection established")

	that.handleMessages(ctx, conn, playerID)

	// The request context is gone once the read loop exits; the cleanup must
	// still reach the registry and the opponent's connection.
	opponent, err := that.gameUseCase.HandleDisconnect(context.WithoutCancel(ctx), playerID)
	if err != nil {
		log.Error("failed to handle disconnect", "error", err)
		return
	}

	that.notifyOpponentQuit(context.WithoutCancel(ctx), opponent)

	log.Info("websocket connection closed")
}

// handleMessages - processes messages from the client until the read fails.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, playerID string) {
	log := that.logger.With("method", "handleMessages", "playerID", playerID)

	for {
		_, reqBody, err := conn.Read(ctx)
		if err != nil {
			log.Debug("read loop finished", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		if err = that.processMessage(ctx, conn, playerID, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, playerID string, msg *Message) error {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return that.sendErrorResponse(ctx, conn, msg.Action, fmt.Sprintf("%v: %s", ErrUnknownAction, msg.Action))
	}

	response, err := handler(ctx, playerID, msg.Payload)
	if err != nil {
		return that.sendErrorResponse(ctx, conn, msg.Action, err.Error())
	}

	return that.sendMessage(ctx, conn, msg.Action, response)
}

func (that *Server) registerConnection(playerID string, conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[playerID] = conn
}

func (that *Server) unregisterConnection(playerID string) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections, playerID)
}

func (that *Server) sendMessage(ctx context.Context, conn *websocket.Conn, action string, payload *ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	messageJSON, err := json.Marshal(&Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err = conn.Write(ctx, websocket.MessageText, messageJSON); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(ctx context.Context, conn *websocket.Conn, action, message string) error {
	return that.sendMessage(ctx, conn, action, &ResponsePayload{Error: message})
}

// pushToPlayer delivers a notification to another player's connection,
// fire-and-forget: a missing or broken peer connection never fails the
// request that triggered the push.
func (that *Server) pushToPlayer(ctx context.Context, playerID, action string, payload *ResponsePayload) {
	log := that.logger.With("method", "pushToPlayer", "playerID", playerID, "action", action)

	that.connectionsMutex.RLock()
	conn, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		log.Warn("connection not found for player")
		return
	}

	if err := that.sendMessage(ctx, conn, action, payload); err != nil {
		log.Error("failed to push message", "error", err)
	}
}

func (that *Server) notifyOpponentQuit(ctx context.Context, opponent *entity.Player) {
	if opponent == nil {
		return
	}

	that.pushToPlayer(ctx, opponent.ID, actionOpponentQuit, &ResponsePayload{})
}
