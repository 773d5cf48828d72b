// Package config resolves the layered build configuration: built-in defaults,
// an optional .env override file, the required packlane.json settings file,
// per-field environment variables, and CLI flags, highest priority last. The
// result is an immutable ResolvedConfig snapshot plus the absolute paths
// derived from it. Resolution either succeeds completely or fails with a typed
// error before any pipeline work begins.
package config
