// Package dungeon builds a single Floor by running the BSP room builder,
// the MST corridor builder, the maze builder, and the special/dark/
// isolated room builders in sequence, then validating the result before
// handing it back to the caller (spec components C3-C10).
package dungeon
