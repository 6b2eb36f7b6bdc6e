// Package cache holds directory listings in a fixed-capacity map with
// insertion-order eviction: the most recently listed directories stay
// resident, reads do not refresh a key's position.
//
// A capacity of zero or less disables caching: Put is a no-op and every
// Get misses.
package cache
