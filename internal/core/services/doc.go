// Package services implements the driving ports on top of the driven ones.
//
// SearchReactor is the interactive core: a single loop goroutine folds
// query and pagination actions into SearchState snapshots while fetches run
// beside it. RepositorySearchService serves the one-shot CLI and MCP paths,
// SettingsService validates configuration, and ResultActionService opens
// or copies a hit.
package services
