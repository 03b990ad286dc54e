// Package gitrepo reads commit snapshots from a local git repository.
//
// Repository resolves revision expressions to commit identifiers, lists the
// files changed between two commits and loads file contents as of a commit,
// all by driving the git executable through execshell.
package gitrepo
