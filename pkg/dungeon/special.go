package dungeon

import (
	"math/rand"

	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// specialRoomKinds are the kinds a non-amulet special room may be
// assigned (spec 4.6).
var specialRoomKinds = []string{
	"treasure", "shrine", "laboratory", "library", "armory", "monster_house",
}

// PopulationTable describes how many items/monsters/gold a special room
// of a given kind should receive, table-driven per spec 4.6. Exported so
// pkg/config can load an operator-supplied override from YAML (spec §1
// "item/monster population tables").
type PopulationTable struct {
	ItemCount    int  `yaml:"item_count"`
	MonsterCount int  `yaml:"monster_count"`
	GoldAmount   int  `yaml:"gold_amount"`
	LockedDoor   bool `yaml:"locked_door"`
}

// specialPopulations is the live table consulted by applySpecialRoom.
// SetSpecialPopulations overrides it entry by entry; unlisted kinds keep
// their built-in defaults.
var specialPopulations = map[string]PopulationTable{
	"treasure":       {ItemCount: 4, GoldAmount: 200, LockedDoor: true},
	"shrine":         {ItemCount: 1, LockedDoor: false},
	"laboratory":     {ItemCount: 3, MonsterCount: 1, LockedDoor: true},
	"library":        {ItemCount: 2, LockedDoor: false},
	"armory":         {ItemCount: 3, LockedDoor: true},
	"monster_house":  {MonsterCount: 6, LockedDoor: false},
	"amulet_chamber": {ItemCount: 1, MonsterCount: 2, LockedDoor: true},
}

// SetSpecialPopulations overrides the built-in special-room population
// table, entry by entry; kinds absent from override are left untouched.
func SetSpecialPopulations(override map[string]PopulationTable) {
	for kind, pop := range override {
		specialPopulations[kind] = pop
	}
}

// applySpecialRoom maybe flags one room as special (spec 4.6): forced on
// floor 26 (amulet_chamber), otherwise rolled at SpecialRoomChance on
// floors >= 5, never floor 1, never on maze floors (open question (b)).
func applySpecialRoom(floor *game.Floor, p Params, itemGen *items.Generator, rng *rand.Rand) {
	if IsMazeFloor(p.Level) || p.Level < 5 || len(floor.Rooms) == 0 {
		return
	}

	var room *game.Room
	var kind string
	if p.Level == 26 {
		room = floor.Rooms[rng.Intn(len(floor.Rooms))]
		kind = "amulet_chamber"
	} else {
		if rng.Float64() >= p.SpecialRoomChance {
			return
		}
		room = floor.Rooms[rng.Intn(len(floor.Rooms))]
		kind = specialRoomKinds[rng.Intn(len(specialRoomKinds))]
	}

	room.SpecialKind = kind
	room.Flags[game.RoomFlagVault] = true

	pop := specialPopulations[kind]
	if pop.LockedDoor {
		room.Key = game.KeyID(room.ID + "-key")
	}
	upgradeRoomDoorsToClosed(floor, room, room.Key)

	placeSpecialPopulation(floor, room, pop, itemGen, rng)
}

func placeSpecialPopulation(floor *game.Floor, room *game.Room, pop PopulationTable, itemGen *items.Generator, rng *rand.Rand) {
	if itemGen == nil {
		return
	}
	for i := 0; i < pop.ItemCount; i++ {
		it := rollRoomItem(itemGen, rng)
		x, y := randomFloorCell(room, rng)
		it.X, it.Y = x, y
		floor.Items = append(floor.Items, it)
	}
	if pop.GoldAmount > 0 {
		gold := itemGen.RollGold(pop.GoldAmount)
		x, y := randomFloorCell(room, rng)
		gold.X, gold.Y = x, y
		floor.Items = append(floor.Items, gold)
	}
	for i := 0; i < pop.MonsterCount; i++ {
		x, y := randomFloorCell(room, rng)
		m := game.NewMonster(monsterID(room.ID, i), "Monster", game.Position{X: x, Y: y, Level: floor.Level}, 8, 3, 1)
		floor.Monsters.Add(m)
	}
}

func monsterID(roomID string, i int) string {
	return roomID + "-monster-" + itoaDungeon(i)
}

func rollRoomItem(gen *items.Generator, rng *rand.Rand) *items.Item {
	switch rng.Intn(4) {
	case 0:
		return gen.RollPotion()
	case 1:
		return gen.RollScroll()
	case 2:
		return gen.RollWeapon()
	default:
		return gen.RollArmor()
	}
}

func randomFloorCell(room *game.Room, rng *rand.Rand) (int, int) {
	x := room.X + rng.Intn(room.W)
	y := room.Y + rng.Intn(room.H)
	return x, y
}
