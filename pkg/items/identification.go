package items

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// AppearanceClass is one of the three (optionally four) pools that get
// shuffled onto true item names at the start of a run (spec §3
// "Identification state").
type AppearanceClass int

const (
	AppearancePotion AppearanceClass = iota
	AppearanceScroll
	AppearanceRing
	AppearanceWand
)

// appearancePools are the closed pools of obfuscated descriptors spec §3
// draws from: colours for potions, fake (Vancian) words for scrolls, gem
// names for rings, and wood types for wands.
var appearancePools = map[AppearanceClass][]string{
	AppearancePotion: {
		"red", "blue", "green", "yellow", "orange", "violet", "indigo",
		"clear", "murky", "fizzy", "smoky", "glowing", "bubbling", "oily",
	},
	AppearanceScroll: {
		"XYZZY", "ELBERETH", "NR 9", "HACKEM MUCHE", "GNIK SISI VLE",
		"DAIYEN FOOELS", "VERR YED HORRE", "THARR", "KERNOD WEL",
		"LEP GEX VEN ZEA", "PRATYAVAYAH", "VELOX NEB",
	},
	AppearanceRing: {
		"ruby", "sapphire", "emerald", "diamond", "opal", "garnet",
		"topaz", "amethyst", "jade", "onyx", "pearl", "moonstone",
	},
	AppearanceWand: {
		"oak", "pine", "ash", "maple", "willow", "birch", "ebony",
		"ivory", "glass", "bone", "copper", "silver",
	},
}

// IdentificationState holds the per-run appearance->true-name scramble for
// potions, scrolls, rings and (per DESIGN.md's ambiguity resolution) wands.
// It is built once at NewRun time from a seeded RNG so a replay with the
// same seed reproduces the same scramble (spec §5 determinism).
type IdentificationState struct {
	// appearance maps a true item name to the shuffled descriptor the
	// player sees until it is identified.
	appearance map[string]string
	// identified tracks which true names the player currently knows.
	identified map[string]bool
	// used tracks which pool descriptors have already been assigned, so
	// two distinct true names never collide on the same appearance.
	usedDescriptor map[AppearanceClass]map[string]bool
}

// NewIdentificationState builds an empty scramble table; appearances are
// assigned lazily the first time a given true name is seen, via Appearance.
func NewIdentificationState() *IdentificationState {
	return &IdentificationState{
		appearance:     make(map[string]string),
		identified:     make(map[string]bool),
		usedDescriptor: make(map[AppearanceClass]map[string]bool),
	}
}

// Appearance returns the display name for trueName within the given
// appearance class: the true name if already identified, otherwise a
// stable obfuscated descriptor assigned from the closed pool on first
// call. The descriptor is deterministic given the same rng sequence and
// call order, which is exactly how spec §8's "stable within one run"
// property is satisfied.
func (s *IdentificationState) Appearance(class AppearanceClass, trueName string, rng *rand.Rand) string {
	if s.identified[trueName] {
		return trueName
	}
	if disp, ok := s.appearance[trueName]; ok {
		return disp
	}
	pool := appearancePools[class]
	used := s.usedDescriptor[class]
	if used == nil {
		used = make(map[string]bool)
		s.usedDescriptor[class] = used
	}
	// Shuffle a fresh candidate order each call so the scramble is
	// independent per true name rather than positional.
	order := rng.Perm(len(pool))
	for _, idx := range order {
		candidate := pool[idx]
		if !used[candidate] {
			used[candidate] = true
			s.appearance[trueName] = candidate
			return candidate
		}
	}
	// Pool exhausted (more true names than descriptors): fall back to a
	// numbered variant rather than colliding silently.
	fallback := fmt.Sprintf("unidentified-%d", len(used)+1)
	s.appearance[trueName] = fallback
	used[fallback] = true
	return fallback
}

// Identify marks trueName (and therefore every stack of items sharing that
// name, spec 4.14 step 4) as identified for the remainder of the run.
func (s *IdentificationState) Identify(trueName string) {
	s.identified[trueName] = true
}

// IsIdentified reports whether trueName has been identified this run.
func (s *IdentificationState) IsIdentified(trueName string) bool {
	return s.identified[trueName]
}

// identificationSnapshot mirrors IdentificationState's unexported maps for
// serialization (spec §8 round-trip invariant).
type identificationSnapshot struct {
	Appearance     map[string]string
	Identified     map[string]bool
	UsedDescriptor map[AppearanceClass]map[string]bool
}

// MarshalJSON implements custom serialization for IdentificationState's unexported fields.
func (s *IdentificationState) MarshalJSON() ([]byte, error) {
	return json.Marshal(identificationSnapshot{
		Appearance:     s.appearance,
		Identified:     s.identified,
		UsedDescriptor: s.usedDescriptor,
	})
}

// UnmarshalJSON restores an IdentificationState from its serialized snapshot.
func (s *IdentificationState) UnmarshalJSON(data []byte) error {
	var snap identificationSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.appearance = snap.Appearance
	s.identified = snap.Identified
	s.usedDescriptor = snap.UsedDescriptor
	if s.appearance == nil {
		s.appearance = make(map[string]string)
	}
	if s.identified == nil {
		s.identified = make(map[string]bool)
	}
	if s.usedDescriptor == nil {
		s.usedDescriptor = make(map[AppearanceClass]map[string]bool)
	}
	return nil
}

// DisplayName returns the item's true name if its appearance class is
// identified, else its scrambled appearance. Items outside the four
// scrambled classes (potions, scrolls, rings, wands) always display their
// true name: weapons, armor, food, gold and the amulet.
func DisplayName(it *Item, ids *IdentificationState, rng *rand.Rand) string {
	class, scrambles := it.Kind.AppearanceClass()
	if !scrambles {
		return it.Name
	}
	return ids.Appearance(class, it.Name, rng)
}
