// Command dungeoncrawler is the terminal entry point for a single-player
// roguelike run: a stdin command loop wired directly to pkg/engine, with
// saves, scores and configuration handled the same way the rest of this
// module does.
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/config"
	"rogue-core/pkg/engine"
	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
	"rogue-core/pkg/save"
	"rogue-core/pkg/server"
	"rogue-core/pkg/validation"
)

// maxCommandLength bounds a raw input line before it's tokenized.
const maxCommandLength = 256

func main() {
	cfg := loadAndConfigureSystem()

	runner, err := newRunner(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start run")
	}
	defer runner.cleanup()

	if addr := os.Getenv("SPECTATOR_ADDR"); addr != "" {
		runner.spectator = server.NewServer(addr)
		go func() {
			if err := runner.spectator.ListenAndServe(); err != nil {
				logrus.WithError(err).Error("spectator feed stopped")
			}
		}()
		defer runner.spectator.Shutdown(context.Background())
	}

	runner.loop()
}

// loadAndConfigureSystem loads configuration and sets up logging, the same
// two-step startup every command in this module follows.
func loadAndConfigureSystem() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.IsDebug() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.WithFields(logrus.Fields{
		"saveDirectory": cfg.SaveDirectory,
		"logLevel":      cfg.LogLevel,
		"autoSave":      cfg.AutoSaveEnabled,
	}).Info("starting dungeon crawler")
	return cfg
}

// runner owns the live Engine and the CLI plumbing around it.
type runner struct {
	cfg       *config.Config
	engine    *engine.Engine
	validator *validation.InputValidator
	scanner   *bufio.Scanner
	out       *bufio.Writer
	saved     bool
	spectator *server.Server
}

// newRunner loads an existing save if one is present and alive, otherwise
// bootstraps a fresh run with a randomly drawn seed.
func newRunner(cfg *config.Config) (*runner, error) {
	ctx := context.Background()
	r := &runner{
		cfg:       cfg,
		validator: validation.NewInputValidator(maxCommandLength),
		scanner:   bufio.NewScanner(os.Stdin),
		out:       bufio.NewWriter(os.Stdout),
	}

	if e, err := save.LoadRun(ctx, cfg.SaveDirectory, cfg); err == nil {
		logrus.Info("resuming saved run")
		r.engine = e
		return r, nil
	}

	e, err := engine.NewEngineWithConfig(randomSeed(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate run: %w", err)
	}
	r.engine = e
	return r, nil
}

// randomSeed draws a fresh run seed from crypto/rand, since a new game's
// seed has no deterministic replay requirement to preserve (spec §9
// determinism only constrains behaviour *within* a fixed seed).
func randomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (r *runner) cleanup() {
	r.out.Flush()
}

// loop reads command lines from stdin until EOF, quit, or permadeath.
func (r *runner) loop() {
	r.printWelcome()
	for {
		r.out.WriteString("> ")
		r.out.Flush()
		if !r.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		if err := r.validator.ValidateCommand(line); err != nil {
			fmt.Fprintf(r.out, "invalid command: %v\n", err)
			r.out.Flush()
			continue
		}

		r.dispatch(line)

		if r.engine.GameOver {
			r.onGameOver()
			break
		}
	}
}

func (r *runner) printWelcome() {
	fmt.Fprintf(r.out, "Welcome, adventurer. Floor %d awaits.\n", r.engine.Floor.Level)
	r.out.Flush()
}

// dispatch tokenizes and executes one already-validated command line,
// printing the resulting CommandResult message.
func (r *runner) dispatch(line string) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	var result engine.CommandResult
	switch verb {
	case "move":
		dx, dy := directionDelta(args[0])
		result = r.engine.Move(dx, dy)
	case "get":
		result = r.engine.GetItem()
	case "use":
		result = r.engine.UseItem(args[0][0], game.DirNone)
	case "zap":
		result = r.engine.ZapWand(args[0][0], parseDirection(args[1]))
	case "cast":
		dir := game.DirNone
		if len(args) == 2 {
			dir = parseDirection(args[1])
		}
		result = r.engine.CastSpell(args[0], dir)
	case "equip":
		result = r.equip(args[0][0])
	case "drop":
		n := 0
		if len(args) == 2 {
			n, _ = strconv.Atoi(args[1])
		}
		result = r.engine.Drop(args[0][0], n)
	case "open":
		x, y := atoiPair(args[0], args[1])
		result = r.engine.OpenDoor(x, y)
	case "close":
		x, y := atoiPair(args[0], args[1])
		result = r.engine.CloseDoor(x, y)
	case "search":
		result = r.engine.Search()
	case "disarm":
		x, y := atoiPair(args[0], args[1])
		result = r.engine.DisarmTrap(x, y)
	case "talk":
		x, y := atoiPair(args[0], args[1])
		result = r.engine.Talk(x, y)
	case "stairs":
		if args[0] == "up" {
			result = r.engine.AscendStairs()
		} else {
			result = r.engine.DescendStairs()
		}
	case "explore":
		result = r.engine.AutoExplore()
	case "rest":
		n := 1
		if len(args) == 1 {
			if parsed, err := strconv.Atoi(args[0]); err == nil && parsed > 0 {
				n = parsed
			}
		}
		result = r.engine.Rest(n)
	case "save":
		result = r.save()
	case "load":
		result = r.load()
	case "debug":
		result = r.debug(args)
	default:
		result = engine.CommandResult{Success: false, Message: "unhandled command: " + verb}
	}

	if result.Message != "" {
		fmt.Fprintln(r.out, result.Message)
	}
	r.out.Flush()

	if r.spectator != nil && result.ShouldEndTurn {
		r.spectator.Broadcast(server.SnapshotFrom(r.engine, result.Message))
	}
}

// equip resolves which equip slot an inventory letter targets: weapons and
// armor have exactly one slot; rings fill the left slot first, then the
// right, matching the two-ring-slot layout in spec §3.
func (r *runner) equip(letter byte) engine.CommandResult {
	it := r.engine.Player.Inventory.ItemAt(letter)
	if it == nil {
		return engine.CommandResult{Success: false, Message: fmt.Sprintf("no item in slot %c", letter)}
	}
	var slot items.EquipSlot
	switch it.Kind {
	case items.KindWeapon:
		slot = items.SlotWeapon
	case items.KindArmor:
		slot = items.SlotArmor
	case items.KindRing:
		slot = items.SlotRingLeft
		if r.engine.Player.Inventory.EquippedAt(items.SlotRingLeft) != nil {
			slot = items.SlotRingRight
		}
	default:
		return engine.CommandResult{Success: false, Message: fmt.Sprintf("%s cannot be equipped", it.Kind)}
	}
	return r.engine.Equip(letter, slot)
}

func (r *runner) save() engine.CommandResult {
	ctx := context.Background()
	if err := save.SaveRun(ctx, r.cfg.SaveDirectory, r.engine); err != nil {
		return engine.CommandResult{Success: false, Message: fmt.Sprintf("save failed: %v", err)}
	}
	return engine.CommandResult{Success: true, Message: "game saved"}
}

func (r *runner) load() engine.CommandResult {
	ctx := context.Background()
	e, err := save.LoadRun(ctx, r.cfg.SaveDirectory, r.cfg)
	if err != nil {
		return engine.CommandResult{Success: false, Message: fmt.Sprintf("load failed: %v", err)}
	}
	r.engine = e
	return engine.CommandResult{Success: true, Message: fmt.Sprintf("game loaded, floor %d", e.Floor.Level)}
}

// debug implements the debug console used in development and by
// spec-driven integration tests: "debug yendor|floor N|pos X Y|hp V|gold N".
func (r *runner) debug(args []string) engine.CommandResult {
	p := r.engine.Player
	switch args[0] {
	case "yendor":
		p.HasAmulet = true
		p.KnownFloorOfAmulet = 26
		return engine.CommandResult{Success: true, Message: "the Amulet of Yendor appears in your pack"}
	case "floor":
		n, _ := strconv.Atoi(args[1])
		p.Pos.Level = n
		return engine.CommandResult{Success: true, Message: fmt.Sprintf("teleported to floor %d", n)}
	case "pos":
		x, y := atoiPair(args[1], args[2])
		p.Pos.X, p.Pos.Y = x, y
		return engine.CommandResult{Success: true, Message: fmt.Sprintf("teleported to (%d,%d)", x, y)}
	case "hp":
		v, _ := strconv.Atoi(args[1])
		p.HP = v
		return engine.CommandResult{Success: true, Message: fmt.Sprintf("hp set to %d", v)}
	case "gold":
		n, _ := strconv.Atoi(args[1])
		p.Gold = n
		return engine.CommandResult{Success: true, Message: fmt.Sprintf("gold set to %d", n)}
	default:
		return engine.CommandResult{Success: false, Message: "unknown debug subcommand"}
	}
}

// onGameOver records the run's final score and removes the now-stale save,
// refusing any further save per spec §6 "refused after permadeath".
func (r *runner) onGameOver() {
	fmt.Fprintf(r.out, "\n%s\n", r.engine.DeathCause)
	r.out.Flush()

	ctx := context.Background()
	result := "death"
	if r.engine.Player.HasAmulet && r.engine.Player.Pos.Level == 1 {
		result = "victory"
	}
	entry := save.NewScoreEntry(r.engine.Player, "player", r.engine.DeathCause, result, time.Now().Format("2006-01-02 15:04:05"))
	if err := save.AppendScore(ctx, r.cfg.SaveDirectory, entry); err != nil {
		logrus.WithError(err).Warn("failed to record score")
	}
	if err := save.DeleteRun(r.cfg.SaveDirectory); err != nil {
		logrus.WithError(err).Warn("failed to delete stale save")
	}
}

func directionDelta(name string) (int, int) {
	return parseDirection(name).Delta()
}

func parseDirection(name string) game.Direction {
	switch strings.ToLower(name) {
	case "n":
		return game.DirNorth
	case "s":
		return game.DirSouth
	case "e":
		return game.DirEast
	case "w":
		return game.DirWest
	case "ne":
		return game.DirNorthEast
	case "nw":
		return game.DirNorthWest
	case "se":
		return game.DirSouthEast
	case "sw":
		return game.DirSouthWest
	default:
		return game.DirNone
	}
}

func atoiPair(a, b string) (int, int) {
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	return x, y
}
