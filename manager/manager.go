package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"cardroom.io/holdem/caching"
	"cardroom.io/holdem/game"
	"cardroom.io/holdem/nats"
	"cardroom.io/holdem/store"
	"cardroom.io/holdem/timer"
	"cardroom.io/holdem/util/random"
)

var managerLogger = log.With().Str("logger_name", "manager::manager").Logger()

const maxUpdateAttempts = 5
const tableCodeLength = 6

// Manager hosts tables: it owns the read-modify-write loop around the pure
// engine, the per-table action timers, and the snapshot broadcast. All game
// semantics live in the game package; the manager only serializes access.
type Manager struct {
	store         store.Store
	broadcaster   *nats.Broadcaster
	codes         *caching.TableCodeCache
	actionTimeout time.Duration

	tableCount uint64

	timerLock sync.Mutex
	timers    map[string]*timer.ActionTimer
}

func NewManager(st store.Store, broadcaster *nats.Broadcaster, actionTimeout time.Duration) (*Manager, error) {
	codes, err := caching.NewCache()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize table code cache")
	}
	return &Manager{
		store:         st,
		broadcaster:   broadcaster,
		codes:         codes,
		actionTimeout: actionTimeout,
		timers:        make(map[string]*timer.ActionTimer),
	}, nil
}

// CreateTable registers a new empty table and returns its snapshot.
func (m *Manager) CreateTable(ctx context.Context, smallBlind int64, bigBlind int64) (*game.Table, error) {
	id := atomic.AddUint64(&m.tableCount, 1)
	code := random.TableCode(tableCodeLength)
	table := game.NewTable(id, code, smallBlind, bigBlind)
	if err := m.store.Save(ctx, code, table, 0); err != nil {
		return nil, errors.Wrapf(err, "Unable to create table %s", code)
	}
	m.codes.Add(id, code)
	managerLogger.Info().
		Uint64("tableID", id).
		Str("tableCode", code).
		Msgf("Table created, blinds %d/%d", smallBlind, bigBlind)
	return table, nil
}

func (m *Manager) GetTable(ctx context.Context, code string) (*game.Table, error) {
	table, _, err := m.store.Load(ctx, code)
	if err != nil {
		return nil, err
	}
	// keep the id resolution warm for tables created by other processes
	m.codes.Add(table.ID, table.Code)
	return table, nil
}

// GetTableByID resolves a table id to its join code via the LRU cache and
// loads the snapshot. Ids not seen by this process resolve once the table
// has been loaded by code.
func (m *Manager) GetTableByID(ctx context.Context, id uint64) (*game.Table, error) {
	code, ok := m.codes.TableIDToCode(id)
	if !ok {
		return nil, store.ErrTableNotFound
	}
	return m.GetTable(ctx, code)
}

// JoinTable seats a player and returns the assigned player id.
func (m *Manager) JoinTable(ctx context.Context, code string, playerID string, name string, buyIn int64) (*game.Table, error) {
	return m.update(ctx, code, func(t *game.Table) (*game.Table, error) {
		next := t.Clone()
		if err := next.AddPlayer(playerID, name, buyIn); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// LeaveTable vacates a seat between hands. When the last player leaves the
// table is removed from the store.
func (m *Manager) LeaveTable(ctx context.Context, code string, playerID string) error {
	next, err := m.update(ctx, code, func(t *game.Table) (*game.Table, error) {
		n := t.Clone()
		if err := n.RemovePlayer(playerID); err != nil {
			return nil, err
		}
		return n, nil
	})
	if err != nil {
		return err
	}
	if len(next.Players) == 0 {
		m.destroyTimer(code)
		if err := m.store.Remove(ctx, code); err != nil && err != store.ErrTableNotFound {
			return errors.Wrapf(err, "Unable to remove empty table %s", code)
		}
		managerLogger.Info().Str("tableCode", code).Msg("Last player left, table removed")
	}
	return nil
}

// StartHand begins the next hand on the table.
func (m *Manager) StartHand(ctx context.Context, code string) (*game.Table, error) {
	return m.update(ctx, code, func(t *game.Table) (*game.Table, error) {
		return game.StartHand(t)
	})
}

// SubmitAction queues a player's intent and lets the engine consume every
// intent that becomes actionable, including ones queued ahead of turn.
func (m *Manager) SubmitAction(ctx context.Context, code string, playerID string, action game.Action) (*game.Table, error) {
	return m.update(ctx, code, func(t *game.Table) (*game.Table, error) {
		if t.Player(playerID) == nil {
			return nil, game.PlayerNotFoundError{PlayerID: playerID}
		}
		next := t.Clone()
		next.Player(playerID).Pending = &game.PendingAction{
			Action:      action,
			SubmittedAt: time.Now(),
		}
		for {
			applied := game.ApplyPending(next)
			if applied == next {
				break
			}
			next = applied
		}
		return next, nil
	})
}

// update runs one load/transition/save cycle with bounded CAS retries.
func (m *Manager) update(ctx context.Context, code string, fn func(*game.Table) (*game.Table, error)) (*game.Table, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		table, rev, err := m.store.Load(ctx, code)
		if err != nil {
			return nil, err
		}
		next, err := fn(table)
		if err != nil {
			return nil, err
		}
		if next == table {
			// transition was a no-op; nothing to persist
			return table, nil
		}
		err = m.store.Save(ctx, code, next, rev)
		if err == store.ErrRevisionConflict {
			continue
		}
		if err != nil {
			return nil, err
		}
		m.afterCommit(next)
		return next, nil
	}
	return nil, errors.Wrapf(store.ErrRevisionConflict, "Gave up updating table %s after %d attempts", code, maxUpdateAttempts)
}

// afterCommit broadcasts the committed snapshot and arms or pauses the
// action timer for the next actor.
func (m *Manager) afterCommit(table *game.Table) {
	m.broadcaster.TableUpdated(table)

	if table.Status != game.TableStatusPlaying || table.CurrentPlayerID == "" {
		m.pauseTimer(table.Code)
		return
	}
	p := table.Player(table.CurrentPlayerID)
	m.resetTimer(table.Code, timer.TimerMsg{
		PlayerID: p.ID,
		CanCheck: p.Bet == table.CurrentBet,
		ExpireAt: time.Now().Add(m.actionTimeout),
	})
}

func (m *Manager) resetTimer(code string, msg timer.TimerMsg) {
	m.timerLock.Lock()
	at, ok := m.timers[code]
	if !ok {
		at = timer.NewActionTimer(code, func(expired timer.TimerMsg) {
			m.handleTimeout(code, expired)
		}, nil)
		at.Run()
		m.timers[code] = at
	}
	m.timerLock.Unlock()
	at.Reset(msg)
}

func (m *Manager) pauseTimer(code string) {
	m.timerLock.Lock()
	at, ok := m.timers[code]
	m.timerLock.Unlock()
	if ok {
		at.Pause()
	}
}

func (m *Manager) destroyTimer(code string) {
	m.timerLock.Lock()
	at, ok := m.timers[code]
	if ok {
		delete(m.timers, code)
	}
	m.timerLock.Unlock()
	if ok {
		at.Destroy()
	}
}

// handleTimeout substitutes a default action for a player whose clock ran
// out: check when nothing is owed, fold otherwise.
func (m *Manager) handleTimeout(code string, expired timer.TimerMsg) {
	ctx := context.Background()
	_, err := m.update(ctx, code, func(t *game.Table) (*game.Table, error) {
		if t.CurrentPlayerID != expired.PlayerID {
			// the player acted just before the clock fired
			return t, nil
		}
		// the timer is re-armed on every commit, so CanCheck reflects the
		// state the clock was started against
		action := game.Action{Kind: game.ActionFold}
		if expired.CanCheck {
			action = game.Action{Kind: game.ActionCheck}
		}
		managerLogger.Info().
			Str("tableCode", code).
			Str("playerID", expired.PlayerID).
			Str("action", action.String()).
			Msg("Player timed out, substituting default action")
		return game.ApplyAction(t, expired.PlayerID, action), nil
	})
	if err != nil {
		managerLogger.Error().
			Str("tableCode", code).
			Msgf("Unable to apply timeout action: %v", err)
	}
}

// TableCodeForID resolves a table id to its join code via the LRU cache.
func (m *Manager) TableCodeForID(id uint64) (string, bool) {
	return m.codes.TableIDToCode(id)
}

// TableIDForCode resolves a join code to the table id via the LRU cache.
func (m *Manager) TableIDForCode(code string) (uint64, bool) {
	return m.codes.TableCodeToID(code)
}
