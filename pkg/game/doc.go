// Package game implements the core entity and tile model for the dungeon
// crawler: tiles and their walkability/transparency rules, actors (player,
// monsters, NPCs) and their stats, and the status-effect list attached to
// every actor.
//
// Combat resolution, item/inventory rules, potion/scroll/wand dispatch,
// dungeon generation and the turn loop all live in sibling packages
// (pkg/combat, pkg/items, pkg/effects, pkg/dungeon, pkg/turn) and operate on
// the types defined here.
package game
