// Package engine implements the deterministic, tick-driven simulation core:
// the game clock, wholesale market, perishable inventory, reputation,
// order generation, the order book, and the orchestrating SimulationEngine.
//
// ARCHITECTURAL RULE: all simulation state is mutated by exactly one
// goroutine, inside Engine.Tick. External callers submit commands through
// Enqueue and observe state only through immutable committed snapshots.
// Randomness comes from a single seeded generator owned by the engine, so
// identical (seed, command sequence, elapsed-time sequence) inputs replay
// to byte-identical snapshots.
package engine
