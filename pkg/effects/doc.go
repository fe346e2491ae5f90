// Package effects implements the potion/scroll/wand effect registry and
// the use-item protocol (spec C14/4.14), plus the status-effect tick
// helper consumed by pkg/turn.
package effects
