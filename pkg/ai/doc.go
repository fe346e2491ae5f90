// Package ai drives the per-monster state machine described in spec
// 4.11: sighting via transparency test, movement via a cached bounded
// Dijkstra distance field, and the special behaviours (flee, ranged,
// thief, psychic, splitter) layered on top of it.
package ai
