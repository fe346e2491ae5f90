package engine

import (
	"rogue-core/pkg/ai"
	"rogue-core/pkg/game"
	"rogue-core/pkg/items"
)

// AutoExploreSightRadius is the distance within which a sighted monster
// aborts auto-explore (grounded on auto_explore_handler.py's
// "3-tile Manhattan" enemy check).
const AutoExploreSightRadius = 3

// AutoExplore advances the player one step toward the nearest
// already-discovered frontier cell (an unexplored floor tile adjacent to
// an explored one), stopping short of issuing the move if a monster is
// nearby. It performs at most one step per call so the input layer can
// keep calling it until it reports ShouldEndTurn=false.
func (e *Engine) AutoExplore() CommandResult {
	if near := e.nearestMonster(); near != nil {
		return CommandResult{Message: "Auto-explore stopped: " + near.Name + " nearby!"}
	}

	target, ok := e.nearestFrontier()
	if !ok {
		return CommandResult{Success: true, Message: "Auto-explore complete: all areas explored."}
	}

	field := ai.BuildDistanceField(e.Floor, target)
	next := field.StepToward(e.Floor, e.Player.Pos)
	if next == e.Player.Pos {
		return CommandResult{Message: "Auto-explore stopped: no safe path found."}
	}

	return e.Move(next.X-e.Player.Pos.X, next.Y-e.Player.Pos.Y)
}

func (e *Engine) nearestMonster() *game.Monster {
	for _, m := range e.Floor.Monsters.Ordered() {
		if !m.Alive() {
			continue
		}
		if m.Pos.ManhattanDistance(e.Player.Pos) <= AutoExploreSightRadius {
			return m
		}
	}
	return nil
}

func (e *Engine) nearestFrontier() (game.Position, bool) {
	best := game.Position{}
	bestDist := -1
	for y := 1; y < e.Floor.Height-1; y++ {
		for x := 1; x < e.Floor.Width-1; x++ {
			if e.Floor.IsExplored(x, y) || !e.Floor.TileAt(x, y).IsWalkable() {
				continue
			}
			if !hasExploredNeighbor(e.Floor, x, y) {
				continue
			}
			d := (x-e.Player.Pos.X)*(x-e.Player.Pos.X) + (y-e.Player.Pos.Y)*(y-e.Player.Pos.Y)
			if bestDist == -1 || d < bestDist {
				bestDist = d
				best = game.Position{X: x, Y: y, Level: e.Floor.Level}
			}
		}
	}
	return best, bestDist != -1
}

func hasExploredNeighbor(floor *game.Floor, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if floor.IsExplored(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// TradeMode selects which side of the counter the player stands on.
type TradeMode int

const (
	TradeBuy TradeMode = iota
	TradeSell
)

// buyMultiplier/sellMultiplier mirror trading_manager.py's
// buy_price_multiplier/sell_price_multiplier.
const (
	buyMultiplier  = 1.5
	sellMultiplier = 0.6
)

func basePrice(kind items.Kind) int {
	switch kind {
	case items.KindWeapon:
		return 15
	case items.KindArmor:
		return 20
	case items.KindRing:
		return 50
	case items.KindPotion:
		return 10
	case items.KindScroll:
		return 12
	case items.KindWand:
		return 30
	case items.KindFood:
		return 3
	case items.KindGold:
		return 1
	case items.KindAmulet:
		return 500
	default:
		return 5
	}
}

// Trade executes a single buy or sell against a friendly shopkeeper NPC
// (grounded on trading_manager.py's execute_trade/_execute_buy/_execute_sell).
func (e *Engine) Trade(npcX, npcY int, letter byte, mode TradeMode) CommandResult {
	pos := game.Position{X: npcX, Y: npcY, Level: e.Floor.Level}
	if !e.Player.Pos.Adjacent(pos) {
		return CommandResult{Message: "There is no merchant nearby."}
	}
	npc := e.Floor.NPCAt(npcX, npcY)
	if npc == nil || npc.Kind != game.NPCShopkeeper || npc.Disposition != game.DispositionFriendly {
		return CommandResult{Message: "There is no one here to trade with."}
	}
	if npc.Inventory == nil {
		npc.Inventory = items.NewInventory()
	}

	switch mode {
	case TradeBuy:
		return e.tradeBuy(npc, letter)
	default:
		return e.tradeSell(npc, letter)
	}
}

func (e *Engine) tradeBuy(npc *game.NPC, letter byte) CommandResult {
	it := npc.Inventory.ItemAt(letter)
	if it == nil {
		return CommandResult{Message: "The merchant doesn't have that."}
	}
	price := int(float64(basePrice(it.Kind)) * buyMultiplier)
	if e.Player.Gold < price {
		return CommandResult{Message: "You don't have enough gold."}
	}
	bought, err := npc.Inventory.RemoveStack(letter, 1)
	if err != nil {
		return CommandResult{Message: "The merchant doesn't have that."}
	}
	if err := e.Player.Inventory.Add(bought); err != nil {
		return CommandResult{Message: "Your pack is full."}
	}
	e.Player.Gold -= price
	return CommandResult{Success: true, Message: "You bought " + bought.Name + " for " + itoa(price) + " gold."}
}

func (e *Engine) tradeSell(npc *game.NPC, letter byte) CommandResult {
	it := e.Player.Inventory.ItemAt(letter)
	if it == nil {
		return CommandResult{Message: "You have nothing in that slot."}
	}
	if it.Cursed {
		return CommandResult{Message: "A dark force clings to it; the merchant refuses."}
	}
	price := int(float64(basePrice(it.Kind)) * sellMultiplier)
	sold, err := e.Player.Inventory.RemoveStack(letter, 1)
	if err != nil {
		return CommandResult{Message: err.Error()}
	}
	_ = npc.Inventory.Add(sold)
	e.Player.Gold += price
	return CommandResult{Success: true, Message: "You sold " + sold.Name + " for " + itoa(price) + " gold."}
}
