// Package store provides Token Store adapters: memory, file, redis and badger.
//
// Every adapter keeps exactly one token under a fixed key and reports a
// missing or unreadable value as absent rather than as an error.
package store

// DefaultKey is the storage key the token is kept under.
const DefaultKey = "token"
