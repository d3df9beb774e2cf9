// Package github implements the repository searcher for the GitHub REST API.
//
// Searches are issued against GET /search/repositories with q, page and
// per_page parameters. Each item's id, full_name and html_url become a
// [domain.Repository].
//
// # Architecture
//
// The searcher follows the driven port pattern defined in
// [driven.RepositorySearcher]. It comprises the following components:
//
//   - Searcher: applies the page contract (empty query, next page cursor)
//   - Client: handles GitHub API communication with rate limiting
//   - Config: holds the base URL, page size and request rate
//   - RateLimiter: proactive throttling plus quota tracking
//
// # Authentication
//
// A token is optional. When the token provider returns an empty string,
// requests are sent without an Authorization header and GitHub applies the
// unauthenticated search limit (10 requests per minute instead of 30).
// The client is rebuilt when the token changes, so a token updated in the
// config file takes effect on the next request.
//
// # Rate Limiting
//
//  1. Proactive throttling: a token bucket limits requests to the
//     configured requests per minute.
//
//  2. Quota tracking: the client records X-RateLimit-Remaining and
//     X-RateLimit-Reset. While the quota is known to be exhausted, searches
//     fail immediately with a [RateLimitError] instead of waiting.
//
// A 403 or 429 response is reported as a [RateLimitError], which matches
// [domain.ErrLimitExceeded] under errors.Is. There are no retries; callers
// decide when to try again.
//
// # Example Usage
//
//	client := github.NewClient(github.ConfigFromSettings(settings), tokenProvider)
//	searcher := github.NewSearcher(client)
//
//	page, err := searcher.SearchRepositories(ctx, "language:go stars:>1000", 1)
package github
