// Package engine is the game logic façade (spec C18): it exposes the
// command surface the input layer drives (move, use_item, equip, drop,
// open/close door, search, disarm_trap, stairs, talk, zap_wand,
// cast_spell) and owns the turn manager, dispatching a tick exactly when
// a command's CommandResult sets ShouldEndTurn.
package engine
