// Package repository coordinates a local and a remote vocabulary store
// behind an in-memory cache.
//
// Reads are answered from the cache when it is present and clean. On a miss
// the repository fetches from both stores concurrently, hands the first
// usable answer to the caller, and lets the other fetch finish in the
// background so its side effects (local persistence, cache population) still
// land. Writes go through to both stores and then update the cache.
//
// A Repository is built once by the composition root and shared; it holds
// no package-level state.
package repository
