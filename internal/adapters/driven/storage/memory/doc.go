// Package memory has map-backed driven adapters: a ConfigStore used when
// the config directory is unusable, and a RepositorySearcher that answers
// from a fixed list. Tests across the repo use both in place of the file
// store and the GitHub API.
package memory
