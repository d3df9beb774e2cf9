// Package connectors holds implementations of the RepositorySearcher port,
// one sub-package per remote search provider.
//
// Connectors are constructed in main and injected into the core services.
package connectors
