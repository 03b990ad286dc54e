// Package rebuild implements the notify command, which asks Travis CI to
// rebuild a downstream repository branch after content has been merged.
package rebuild
