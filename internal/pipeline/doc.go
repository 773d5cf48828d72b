// Package pipeline turns a resolved configuration into a declarative
// description of the bundling pipeline: an ordered list of typed stage
// descriptors plus a single output descriptor. Assembly is a pure function;
// it cannot fail and produces structurally identical output for identical
// input. The description is consumed by the engine package, which maps it
// onto the bundler.
package pipeline
