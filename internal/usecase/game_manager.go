package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/alinem-backend/internal/alinem"
	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	Get(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id string) error

	EnqueueOpen(ctx context.Context, id string) error
	DequeueOpen(ctx context.Context) (string, error)
}

type playerRepo interface {
	MapToGame(ctx context.Context, playerID, gameID string) error
	GameIDOf(ctx context.Context, playerID string) (string, error)
	Unmap(ctx context.Context, playerID string) error
}

type gameAI interface {
	ChooseAction(state *entity.BoardState, difficulty entity.Difficulty) (entity.Action, error)
}

// GameManager is the session orchestrator: every inbound request becomes one
// atomic transition on one game. Point operations on the repositories are
// individually safe, so the manager adds a per-game mutex held across the
// whole read-validate-apply-persist span of compound transitions.
type GameManager struct {
	logger *slog.Logger

	gameRepo   gameRepo
	playerRepo playerRepo
	gameAI     gameAI

	defaultDifficulty entity.Difficulty

	gameLocks sync.Map
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, playerRepo playerRepo, gameAI gameAI, defaultDifficulty entity.Difficulty) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		gameAI:     gameAI,

		defaultDifficulty: defaultDifficulty,
	}
}

// InitGame starts a game for the requesting connection. Vs the computer the
// game is playable immediately; vs a random player it either joins a pending
// open game or creates one and waits; vs a friend it always waits for a join
// by id.
func (that *GameManager) InitGame(ctx context.Context, playerID, userName string, userTurn entity.Turn, gameType entity.GameType, difficulty entity.Difficulty) (*entity.Game, error) {
	player := &entity.Player{
		ID:   playerID,
		Name: userName,
		Type: entity.PlayerTypeHuman,
	}

	switch gameType {
	case entity.VsComputer:
		return that.initGameVsComputer(ctx, player, userTurn, difficulty)
	case entity.VsRandomPlayer:
		return that.initOrJoinGameVsRandomPlayer(ctx, player)
	case entity.VsFriend:
		return that.initWaitingGame(ctx, player, entity.VsFriend)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownGameType, gameType)
	}
}

// JoinGame seats the player as player2 of a waiting game. A missing game is
// an expected outcome on the invite-link path and is reported as
// apperror.ErrGameNotFound, not as an internal failure.
func (that *GameManager) JoinGame(ctx context.Context, gameID, playerID, userName string) (*entity.Game, error) {
	player := &entity.Player{
		ID:   playerID,
		Name: userName,
		Type: entity.PlayerTypeHuman,
	}

	unlock := that.lockGame(gameID)
	defer unlock()

	return that.join(ctx, gameID, player)
}

// SendAction validates and applies one action. If the turn passes to the
// computer the reply move is computed and applied within the same transition,
// so the caller receives both half-moves in one response.
func (that *GameManager) SendAction(ctx context.Context, gameID, playerID string, action entity.Action) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	game, err := that.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmPlayingState(); err != nil {
		return nil, err
	}

	if !game.HasPlayer(playerID) {
		return nil, apperror.ErrPlayerNotInGame
	}

	if game.CurrentPlayer().ID != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if err = alinem.ValidateAction(game.Board, action); err != nil {
		return nil, fmt.Errorf("invalid action: %w", err)
	}

	newState := alinem.ApplyAction(*game.Board, action)
	game.Board = &newState

	if newState.HasWinner() {
		game.Stage = entity.StageGameOver
	} else if game.CurrentPlayer().IsComputer() {
		if err = that.applyComputerReply(game); err != nil {
			return nil, err
		}
	}

	if err = that.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// ResetGame starts the board over with the requested opening turn. Only games
// vs the computer and finished games are eligible; player identities keep
// their seats.
func (that *GameManager) ResetGame(ctx context.Context, gameID, playerID string, userTurn entity.Turn) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	game, err := that.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.HasPlayer(playerID) {
		return nil, apperror.ErrPlayerNotInGame
	}

	if !game.CanBeReset() {
		return nil, apperror.ErrGameCannotBeReset
	}

	game.Board = alinem.NewBoardState(normalizeTurn(userTurn))
	game.Stage = entity.StagePlaying

	if err = that.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// QuitGame removes the player's game. It returns the human opponent that
// should be notified of the abandonment, or nil when there is none (waiting
// games, games vs the computer).
func (that *GameManager) QuitGame(ctx context.Context, gameID, playerID string) (*entity.Player, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	log := that.logger.With("method", "QuitGame", "gameID", gameID)

	game, err := that.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.HasPlayer(playerID) {
		return nil, apperror.ErrPlayerNotInGame
	}

	var opponent *entity.Player
	if game.IsPlaying() {
		if other := game.Opponent(playerID); other != nil && !other.IsComputer() {
			opponent = other
		}
	}

	that.removeGame(ctx, game)
	log.Info("game removed", "quitter", playerID)

	return opponent, nil
}

// HandleDisconnect treats a lost connection as a quit of whatever game the
// player currently occupies. Unknown players are a no-op.
func (that *GameManager) HandleDisconnect(ctx context.Context, playerID string) (*entity.Player, error) {
	gameID, err := that.playerRepo.GameIDOf(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player's game: %w", err)
	}

	if gameID == "" {
		return nil, nil
	}

	opponent, err := that.QuitGame(ctx, gameID, playerID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return nil, nil
	}

	return opponent, err
}

func (that *GameManager) initGameVsComputer(ctx context.Context, player *entity.Player, userTurn entity.Turn, difficulty entity.Difficulty) (*entity.Game, error) {
	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	game := &entity.Game{
		ID:         uuid.NewString(),
		Type:       entity.VsComputer,
		Stage:      entity.StagePlaying,
		CreatedAt:  time.Now().UTC(),
		Player1:    player,
		Player2:    entity.ComputerPlayer(),
		Board:      alinem.NewBoardState(normalizeTurn(userTurn)),
		Difficulty: difficulty,
	}

	if err := that.persistNewGame(ctx, game, player.ID); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) initOrJoinGameVsRandomPlayer(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	// Pending games may have been quit after being dequeued by nobody, so a
	// stale id just means trying the next one.
	for {
		openGameID, err := that.gameRepo.DequeueOpen(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to dequeue open game: %w", err)
		}

		if openGameID == "" {
			break
		}

		unlock := that.lockGame(openGameID)
		game, joinErr := that.join(ctx, openGameID, player)
		unlock()

		if errors.Is(joinErr, apperror.ErrGameNotFound) {
			continue
		}

		if joinErr != nil {
			return nil, joinErr
		}

		return game, nil
	}

	game, err := that.initWaitingGame(ctx, player, entity.VsRandomPlayer)
	if err != nil {
		return nil, err
	}

	if err = that.gameRepo.EnqueueOpen(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to enqueue open game: %w", err)
	}

	return game, nil
}

func (that *GameManager) initWaitingGame(ctx context.Context, player *entity.Player, gameType entity.GameType) (*entity.Game, error) {
	game := &entity.Game{
		ID:        uuid.NewString(),
		Type:      gameType,
		Stage:     entity.StageWaitingForOpponent,
		CreatedAt: time.Now().UTC(),
		Player1:   player,
	}

	if err := that.persistNewGame(ctx, game, player.ID); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) persistNewGame(ctx context.Context, game *entity.Game, playerID string) error {
	if err := that.gameRepo.Create(ctx, game); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if err := that.playerRepo.MapToGame(ctx, playerID, game.ID); err != nil {
		return fmt.Errorf("failed to map player to game: %w", err)
	}

	return nil
}

// join seats the player as player2 and starts play. Caller holds the game lock.
// Player1, the game's creator, always opens.
func (that *GameManager) join(ctx context.Context, gameID string, player *entity.Player) (*entity.Game, error) {
	game, err := that.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	// Re-join of an already seated player is a reconnect, not an error.
	if game.HasPlayer(player.ID) {
		return game, nil
	}

	if !game.IsWaiting() || game.Player2 != nil {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameFull, gameID)
	}

	game.Player2 = player
	game.Stage = entity.StagePlaying
	game.Board = alinem.NewBoardState(entity.TurnOne)

	if err = that.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if err = that.playerRepo.MapToGame(ctx, player.ID, game.ID); err != nil {
		return nil, fmt.Errorf("failed to map player to game: %w", err)
	}

	return game, nil
}

// applyComputerReply asks the AI for the computer's move and applies it.
// Caller holds the game lock and has already applied the human's move.
func (that *GameManager) applyComputerReply(game *entity.Game) error {
	action, err := that.gameAI.ChooseAction(game.Board, game.Difficulty)
	if err != nil {
		return fmt.Errorf("computer failed to choose an action: %w", err)
	}

	newState := alinem.ApplyAction(*game.Board, action)
	game.Board = &newState

	if newState.HasWinner() {
		game.Stage = entity.StageGameOver
	}

	return nil
}

func (that *GameManager) removeGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "removeGame", "gameID", game.ID)

	if err := that.gameRepo.Delete(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range []*entity.Player{game.Player1, game.Player2} {
		if player == nil || player.IsComputer() {
			continue
		}

		if err := that.playerRepo.Unmap(ctx, player.ID); err != nil {
			log.Error("failed to unmap player", "playerID", player.ID, "error", err)
		}
	}

	that.gameLocks.Delete(game.ID)
}

// lockGame serializes compound transitions on one game. The returned func
// releases the lock and must run on every exit path.
func (that *GameManager) lockGame(id string) func() {
	lock, _ := that.gameLocks.LoadOrStore(id, &sync.Mutex{})
	mu, _ := lock.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func normalizeTurn(turn entity.Turn) entity.Turn {
	if turn == entity.TurnTwo {
		return entity.TurnTwo
	}
	return entity.TurnOne
}
