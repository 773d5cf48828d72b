// Package app wires the build driver together: it resolves the layered
// configuration, assembles the pipeline description, prepares the output
// folder, and hands the description to the engine in batch or watch mode,
// consuming the engine's lifecycle events.
package app
