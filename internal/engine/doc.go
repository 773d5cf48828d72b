// Package engine executes an assembled pipeline description. It maps the
// declarative stage list onto esbuild, runs one-shot batch builds, and hosts
// persistent watch sessions that surface lifecycle events. Webapp post-stages
// (HTML generation, live reload) are driven from here because they must run
// again after every successful rebuild.
package engine
