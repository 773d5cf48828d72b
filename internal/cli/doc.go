// Package cli parses command-line arguments for the build driver and owns
// process-level concerns: the stable exit code table and the ExitError type
// that carries a code from any component up to main. Flags are registered
// straight from the declarative configuration schema, so the CLI surface
// cannot drift from the settings file.
package cli
