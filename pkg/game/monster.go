package game

import "encoding/json"

// AIPattern selects which behaviour pkg/ai dispatches a monster to (spec
// C16: "Basic/flee/ranged/thief/psychic/splitter behaviours").
type AIPattern int

const (
	AIBasic AIPattern = iota
	AIFlee
	AIRanged
	AIThief
	AIPsychic
	AISplitter
)

func (p AIPattern) String() string {
	switch p {
	case AIBasic:
		return "basic"
	case AIFlee:
		return "flee"
	case AIRanged:
		return "ranged"
	case AIThief:
		return "thief"
	case AIPsychic:
		return "psychic"
	case AISplitter:
		return "splitter"
	default:
		return "unknown"
	}
}

// MonsterSpecialFlags gates which special-attack behaviours a monster has
// available (spec C12/4.13).
type MonsterSpecialFlags struct {
	CanStealItems  bool
	CanStealGold   bool
	CanDrainLevel  bool
	CanSplit       bool
	CanRanged      bool
	IsFleeing      bool
}

// AIState is the monster's current node in the state machine described in
// spec 4.11: Idle, Patrol, Alert, Combat, Flee, UseSpecial.
type AIState int

const (
	AIStateIdle AIState = iota
	AIStatePatrol
	AIStateAlert
	AIStateCombat
	AIStateFlee
	AIStateUseSpecial
)

// Monster is the hostile actor subtype (spec C12).
type Monster struct {
	Actor

	Name          string
	KindChar      rune
	ExpValue      int
	ViewRange     int
	Color         string
	AIPattern     AIPattern
	State         AIState
	Flags         MonsterSpecialFlags
	SpecialCooldown int

	// ParentID/SplitChildIDs model the cyclic splitter relationship as
	// stable string ids rather than pointers (DESIGN.md "arena + numeric
	// id" decision), resolved through a MonsterStore rather than followed
	// directly.
	ParentID      string
	SplitChildIDs []string
}

// NewMonster returns a level-1 monster with the given stats.
func NewMonster(id, name string, pos Position, hp, attack, defense int) *Monster {
	return &Monster{
		Actor: NewActor(id, pos, hp, attack, defense),
		Name:  name,
	}
}

// FleeThreshold is the HP fraction (spec 4.11 "hp>flee_threshold (0.3 of
// max)") below which a monster capable of fleeing transitions to Flee.
const FleeThreshold = 0.3

// ShouldFlee reports whether the monster's current HP fraction is at or
// below FleeThreshold.
func (m *Monster) ShouldFlee() bool {
	if m.MaxHP <= 0 {
		return false
	}
	return float64(m.HP)/float64(m.MaxHP) <= FleeThreshold
}

// MonsterStore is the per-floor monster collection (spec C11 "Floor{...
// monsters ...}"). It keeps stable insertion order for AI dispatch (spec
// 4.11 "evaluation order = stable insertion order") while still allowing
// O(1) lookup by id, addressing split-children/parent references without
// holding Go pointers across entries that may be deleted and re-added.
type MonsterStore struct {
	order []string
	byID  map[string]*Monster
}

// NewMonsterStore returns an empty store.
func NewMonsterStore() *MonsterStore {
	return &MonsterStore{byID: make(map[string]*Monster)}
}

// Add appends a monster, preserving arrival order.
func (s *MonsterStore) Add(m *Monster) {
	if _, exists := s.byID[m.ID]; exists {
		return
	}
	s.order = append(s.order, m.ID)
	s.byID[m.ID] = m
}

// Get looks up a monster by id.
func (s *MonsterStore) Get(id string) (*Monster, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Remove deletes a monster by id (e.g. on death), preserving the relative
// order of the remaining monsters.
func (s *MonsterStore) Remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Ordered returns every live monster in stable insertion order, the
// iteration order spec 4.11/§5 require for AI dispatch.
func (s *MonsterStore) Ordered() []*Monster {
	out := make([]*Monster, 0, len(s.order))
	for _, id := range s.order {
		if m, ok := s.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of live monsters.
func (s *MonsterStore) Len() int { return len(s.order) }

// MarshalJSON serializes the store as its ordered monster list, so a
// reloaded store replays the same stable insertion order (spec 4.11
// "evaluation order = stable insertion order").
func (s *MonsterStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ordered())
}

// UnmarshalJSON rebuilds the store from an ordered monster list.
func (s *MonsterStore) UnmarshalJSON(data []byte) error {
	var monsters []*Monster
	if err := json.Unmarshal(data, &monsters); err != nil {
		return err
	}
	s.order = nil
	s.byID = make(map[string]*Monster, len(monsters))
	for _, m := range monsters {
		s.Add(m)
	}
	return nil
}
