// Package ratelimit provides the token bucket limiter awaited between
// comment-page fetches so the paginated feed is not hammered. It throttles
// request spacing only; the pagination loop's page ceiling is the sole bound
// on iteration count.
package ratelimit
