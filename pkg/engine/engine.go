package engine

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rogue-core/pkg/config"
	"rogue-core/pkg/dungeon"
	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
	"rogue-core/pkg/turn"
)

// CommandResult is the uniform response every façade command returns
// (spec 4.15). Only ShouldEndTurn=true commands advance the simulation.
type CommandResult struct {
	Success       bool
	ShouldEndTurn bool
	Message       string
}

// ErrGameOver is returned by commands issued after the player has died;
// the façade refuses further state mutation once permadeath triggers.
var ErrGameOver = errors.New("game over")

// Engine bundles everything a running game needs: the player, the
// current floor, the turn manager, the dungeon director for floor
// transitions, and the per-run seed manager every subsystem's RNG
// streams derive from (spec §9 determinism).
type Engine struct {
	// RunID correlates this run's log lines and spectator snapshots
	// (the same role the teacher's request/session ids played), not
	// persisted to the save file since spec §6 fixes the metadata
	// field set and a reloaded run keeps whatever id the process that
	// loads it assigns.
	RunID string

	Player   *game.Player
	Floor    *game.Floor
	Turns    *turn.Manager
	Director *dungeon.Director
	Seeds    *game.SeedManager
	Log      *game.EventLog

	// floors caches every level generated so far, keyed by depth, so
	// backtracking to an earlier floor shows it exactly as it was left
	// (spec C11 doc comment). The generator itself stays stateless
	// (spec §5 "the dungeon generator ... does not retain references");
	// this cache lives in the façade, not in pkg/dungeon.
	floors map[int]*game.Floor

	GameOver   bool
	DeathCause string
}

// NewEngine bootstraps a fresh run at floor 1 from runSeed, using the
// package's default GenerationRetry policy.
func NewEngine(runSeed int64) (*Engine, error) {
	return NewEngineWithConfig(runSeed, nil)
}

// NewEngineWithConfig bootstraps a fresh run at floor 1 from runSeed. If cfg
// is non-nil, its GetRetryConfig() drives the dungeon director's
// GenerationRetry policy (spec §7) in place of the package default.
func NewEngineWithConfig(runSeed int64, cfg *config.Config) (*Engine, error) {
	seeds := game.NewSeedManager(runSeed)
	itemGen := items.NewGenerator(seeds.Stream(game.RNGDomainItems, 0))
	var director *dungeon.Director
	if cfg != nil {
		director = dungeon.NewDirectorWithRetry(itemGen, cfg.GetRetryConfig())
	} else {
		director = dungeon.NewDirector(itemGen)
	}

	floor, err := director.Generate(context.Background(), 1, seeds.Stream(game.RNGDomainDungeon, 1))
	if err != nil {
		return nil, err
	}

	player := game.NewPlayer("player", spawnPosition(floor))

	e := &Engine{
		RunID:    uuid.NewString(),
		Player:   player,
		Floor:    floor,
		Turns:    turn.NewManager(),
		Director: director,
		Seeds:    seeds,
		Log:      game.NewEventLog(),
		floors:   map[int]*game.Floor{1: floor},
	}
	logrus.WithFields(logrus.Fields{
		"function": "NewEngineWithConfig",
		"runID":    e.RunID,
		"runSeed":  runSeed,
	}).Info("run started")
	return e, nil
}

// RestoredRun bundles everything pkg/save.LoadRun reconstructs from a save
// payload, handed to NewEngineFromSnapshot to rebuild a live Engine.
type RestoredRun struct {
	RunSeed      int64
	Player       *game.Player
	Floors       map[int]*game.Floor
	CurrentFloor int
	TurnCount    int
	GameOver     bool
	DeathCause   string
}

// NewEngineFromSnapshot rebuilds an Engine from a loaded save (spec §6 load
// contract). The dungeon director and seed manager are recreated from
// RunSeed rather than serialized directly (*rand.Rand carries no exported
// state); generation of any floor beyond those already visited continues
// deterministically from the same run seed.
func NewEngineFromSnapshot(run RestoredRun, cfg *config.Config) *Engine {
	seeds := game.NewSeedManager(run.RunSeed)
	itemGen := items.NewGenerator(seeds.Stream(game.RNGDomainItems, 0))
	var director *dungeon.Director
	if cfg != nil {
		director = dungeon.NewDirectorWithRetry(itemGen, cfg.GetRetryConfig())
	} else {
		director = dungeon.NewDirector(itemGen)
	}

	floors := run.Floors
	if floors == nil {
		floors = map[int]*game.Floor{}
	}
	currentFloor := floors[run.CurrentFloor]

	e := &Engine{
		RunID:      uuid.NewString(),
		Player:     run.Player,
		Floor:      currentFloor,
		Turns:      &turn.Manager{Count: run.TurnCount},
		Director:   director,
		Seeds:      seeds,
		Log:        game.NewEventLog(),
		floors:     floors,
		GameOver:   run.GameOver,
		DeathCause: run.DeathCause,
	}
	return e
}

// Floors returns the full level -> Floor cache, for pkg/save to persist
// every visited floor alongside the player (spec §6 "Save file").
func (e *Engine) Floors() map[int]*game.Floor {
	return e.floors
}

// floorAt returns the cached floor for level, generating it on first
// visit.
func (e *Engine) floorAt(level int) (*game.Floor, error) {
	if f, ok := e.floors[level]; ok {
		return f, nil
	}
	f, err := e.Director.Generate(context.Background(), level, e.Seeds.Stream(game.RNGDomainDungeon, level))
	if err != nil {
		return nil, err
	}
	e.floors[level] = f
	return f, nil
}

func spawnPosition(floor *game.Floor) game.Position {
	if floor.StairsUp != nil {
		p := *floor.StairsUp
		p.Level = floor.Level
		return p
	}
	if len(floor.Rooms) > 0 {
		c := floor.Rooms[0].Center()
		return game.Position{X: c.X, Y: c.Y, Level: floor.Level}
	}
	return game.Position{Level: floor.Level}
}

// combatRNG returns this run's combat stream for the player's current
// floor (spec §9 "dungeon generation and combat resolution must not
// share a draw sequence").
func (e *Engine) combatRNG() *rand.Rand {
	return e.Seeds.Stream(game.RNGDomainCombat, e.Floor.Level)
}

func (e *Engine) aiRNG() *rand.Rand {
	return e.Seeds.Stream(game.RNGDomainAI, e.Floor.Level)
}

// endTurn runs one tick and folds its messages into a command's result,
// the only place pkg/engine calls into pkg/turn (spec §4.15 "only
// results with should_end_turn=true trigger the turn manager").
func (e *Engine) endTurn(message string) CommandResult {
	if e.GameOver {
		return CommandResult{Success: false, Message: "The game has ended."}
	}
	msgs, err := e.Turns.Tick(e.Player, e.Floor, e.aiRNG())
	all := msgs
	if message != "" {
		all = append([]string{message}, msgs...)
	}
	for _, m := range all {
		e.Log.Add(m)
	}
	if err != nil {
		e.GameOver = true
		e.DeathCause = describeDeath(err, e.Floor)
		logrus.WithFields(logrus.Fields{
			"function": "endTurn",
			"cause":    e.DeathCause,
		}).Info("player run ended")
	}
	return CommandResult{Success: true, ShouldEndTurn: true, Message: joinMessages(all)}
}

func describeDeath(err error, floor *game.Floor) string {
	if errors.Is(err, turn.ErrPlayerDied) {
		return "died on floor " + itoa(floor.Level)
	}
	return err.Error()
}

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += " "
		}
		out += m
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func monsterAt(floor *game.Floor, pos game.Position) *game.Monster {
	for _, m := range floor.Monsters.Ordered() {
		if m.Pos.X == pos.X && m.Pos.Y == pos.Y && m.Alive() {
			return m
		}
	}
	return nil
}
