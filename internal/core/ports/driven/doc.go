// Package driven holds the ports core services call out through.
//
// RepositorySearcher is the search backend contract: one page per call, an
// empty query answered without any request, and rate limiting reported as
// domain.ErrLimitExceeded. ConfigStore persists settings. TokenProvider is
// optional; without a token the searcher runs unauthenticated.
package driven
