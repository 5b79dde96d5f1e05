package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

// MemoryRegistry is the default, in-memory session store. It owns the game
// table, the queue of games awaiting a random opponent, and the player→game
// mapping; callers never see the underlying maps, only these synchronized
// operations. It implements both the game and the player repository
// interfaces of the use case layer.
type MemoryRegistry struct {
	mu        sync.RWMutex
	games     map[string]*entity.Game
	openGames []string
	players   map[string]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		games:   make(map[string]*entity.Game),
		players: make(map[string]string),
	}
}

// Create stores a new game. Ids are generated with negligible collision
// probability, so a duplicate means a caller bug.
func (that *MemoryRegistry) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; ok {
		return fmt.Errorf("%w: id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	that.games[game.ID] = game.Clone()
	return nil
}

// Get returns a copy of the stored game.
func (that *MemoryRegistry) Get(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game.Clone(), nil
}

// Update replaces the stored game. It never creates: a missing id means the
// game was removed concurrently.
func (that *MemoryRegistry) Update(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; !ok {
		return fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, game.ID)
	}

	that.games[game.ID] = game.Clone()
	return nil
}

// Delete removes the game and its open-queue entry, if any. Deleting an
// absent id is a no-op.
func (that *MemoryRegistry) Delete(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)
	that.evictOpenLocked(id)
	return nil
}

// EnqueueOpen adds the game to the pool of games awaiting a random opponent.
func (that *MemoryRegistry) EnqueueOpen(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.openGames = append(that.openGames, id)
	return nil
}

// DequeueOpen pops the oldest open game id, exactly once per id even under
// concurrent callers. An empty pool returns "".
func (that *MemoryRegistry) DequeueOpen(_ context.Context) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.openGames) == 0 {
		return "", nil
	}

	id := that.openGames[0]
	that.openGames = that.openGames[1:]
	return id, nil
}

// MapToGame records the game a player currently participates in. A player
// maps to at most one game; a new mapping overwrites the old one.
func (that *MemoryRegistry) MapToGame(_ context.Context, playerID, gameID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[playerID] = gameID
	return nil
}

// GameIDOf returns the id of the player's current game, or "" if none.
func (that *MemoryRegistry) GameIDOf(_ context.Context, playerID string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.players[playerID], nil
}

// Unmap forgets the player's current game. Idempotent.
func (that *MemoryRegistry) Unmap(_ context.Context, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.players, playerID)
	return nil
}

func (that *MemoryRegistry) evictOpenLocked(id string) {
	for i, openID := range that.openGames {
		if openID == id {
			that.openGames = append(that.openGames[:i], that.openGames[i+1:]...)
			return
		}
	}
}
