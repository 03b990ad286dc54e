// Package testsupport materializes git repositories for tests. Each commit is
// described by a txtar archive whose files are written before committing;
// archive comments carry the commit message and `delete <path>` directives.
package testsupport
