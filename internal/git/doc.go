// Package git runs the commit and inspects the repository around it.
//
// Commits shell out to the git binary with an argument vector, so the
// message reaches git verbatim whatever quotes it contains. Repository
// inspection (root discovery, staged changes, HEAD after a commit) goes
// through go-git and needs no binary at all.
package git
