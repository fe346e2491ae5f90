package dungeon

// Params configures a single floor's generation run. Defaults mirror
// spec 4.2-4.9.
type Params struct {
	Level int

	Width, Height int

	// BSP parameters (spec 4.2).
	MaxSplitDepth int
	MinSplitSize  int
	RoomMinW, RoomMaxW int
	RoomMinH, RoomMaxH int
	RoomMargin    int

	// LoopChance is the extra-edge probability per unused adjacent room
	// pair after the MST completes (spec 4.3).
	LoopChance float64

	// MazeComplexity in [0.25, 0.8] (spec 4.5), only used on maze floors.
	MazeComplexity float64

	// SpecialRoomChance is the per-floor probability of placing one
	// special room (spec 4.6).
	SpecialRoomChance float64

	// DarkRoomChance is the per-room probability of marking a room dark
	// on a dark-eligible floor (spec 4.7).
	DarkRoomChance float64

	// IsolationLevel is the probability of generating isolated rooms on
	// an isolation-eligible floor (spec 4.8).
	IsolationLevel float64

	// MaxValidatorRetries records the re-roll budget (spec 4.9, error
	// taxonomy GenerationRetry, N=5). Director does not read it; its
	// attempt count comes from the retry policy it was built with.
	MaxValidatorRetries int
}

// DefaultParams returns the spec's default generation parameters for the
// given dungeon level.
func DefaultParams(level int) Params {
	return Params{
		Level:               level,
		Width:               79,
		Height:              23,
		MaxSplitDepth:       10,
		MinSplitSize:        8,
		RoomMinW:            4,
		RoomMaxW:            20,
		RoomMinH:            4,
		RoomMaxH:            15,
		RoomMargin:          2,
		LoopChance:          0.20,
		MazeComplexity:      0.5,
		SpecialRoomChance:   0.15,
		DarkRoomChance:      0.3,
		IsolationLevel:      0.6,
		MaxValidatorRetries: 5,
	}
}

// mazeFloors are the fixed levels replaced wholesale by the maze builder
// (spec 4.5).
var mazeFloors = map[int]bool{7: true, 13: true, 19: true}

// darkFloors are the levels eligible for dark-room marking (spec 4.7).
var darkFloors = map[int]bool{6: true, 10: true, 14: true, 17: true, 20: true, 23: true, 24: true}

// isolatedFloors are the levels eligible for isolated rooms (spec 4.8).
var isolatedFloors = map[int]bool{4: true, 8: true, 11: true, 15: true, 18: true, 22: true, 25: true}

// IsMazeFloor reports whether level is replaced by a maze (spec 4.5).
func IsMazeFloor(level int) bool { return mazeFloors[level] }

// IsDarkEligible reports whether level may carry dark rooms (spec 4.7).
func IsDarkEligible(level int) bool { return darkFloors[level] }

// IsIsolationEligible reports whether level may carry isolated rooms
// (spec 4.8).
func IsIsolationEligible(level int) bool { return isolatedFloors[level] }

// PlacementStrategy names the BSP room-placement bias for a floor band
// (spec 4.2).
type PlacementStrategy int

const (
	PlacementCenterBias PlacementStrategy = iota
	PlacementUniform
	PlacementEdgeBias
	PlacementGoldenRatio
	PlacementCorner
)

// StrategyForLevel selects the placement strategy for the given dungeon
// level.
func StrategyForLevel(level int) PlacementStrategy {
	switch {
	case level >= 1 && level <= 5:
		return PlacementCenterBias
	case level <= 10:
		return PlacementUniform
	case level <= 15:
		return PlacementEdgeBias
	case level <= 20:
		return PlacementGoldenRatio
	default:
		return PlacementCorner
	}
}
