package turn

import (
	"math/rand"

	"rogue-core/pkg/ai"
	"rogue-core/pkg/game"
)

// RestResult reports why a rest action stopped.
type RestResult struct {
	TicksElapsed int
	Messages     []string
	Interrupted  bool
	Reason       string
}

// Rest advances up to maxTicks ticks, aborting early on damage taken or a
// monster coming into sight (spec 4.12 "a 'rest' action advances N
// ticks, aborting early on damage taken or monster-in-sight").
func (m *Manager) Rest(player *game.Player, floor *game.Floor, rng *rand.Rand, maxTicks int) (RestResult, error) {
	var result RestResult
	for i := 0; i < maxTicks; i++ {
		hpBefore := player.HP

		msgs, err := m.Tick(player, floor, rng)
		result.Messages = append(result.Messages, msgs...)
		result.TicksElapsed++
		if err != nil {
			return result, err
		}

		if player.HP < hpBefore {
			result.Interrupted = true
			result.Reason = "damage taken"
			return result, nil
		}
		if monsterInSight(player, floor) {
			result.Interrupted = true
			result.Reason = "monster sighted"
			return result, nil
		}
	}
	return result, nil
}

func monsterInSight(player *game.Player, floor *game.Floor) bool {
	for _, monster := range floor.Monsters.Ordered() {
		if ai.CanSee(floor, player.Pos, monster.Pos, PlayerViewRadius) {
			return true
		}
	}
	return false
}
