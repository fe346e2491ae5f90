// Package turn drives the single-threaded cooperative tick loop of spec
// 4.12: player status ticks, monster AI in stable order, monster status
// ticks, the hunger/starvation/MP-recovery clocks, and the end-of-turn
// death check.
package turn
