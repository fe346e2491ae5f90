// Package combat resolves melee/ranged attack rolls between actors,
// awards experience, and processes level-ups and death (spec C15).
package combat
