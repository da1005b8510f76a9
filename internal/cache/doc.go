// Package cache stores explorer API responses on disk with TTL expiration.
//
// Entries live as JSON files under ~/.tokenscope/cache/ and are keyed by a
// SHA256 digest of the resource name, address hash and page parameters. The
// cache sits underneath the explorer client so that reopening the same token
// page, or paging back and forth, does not repeat requests within the TTL.
package cache
