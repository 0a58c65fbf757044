// Package ids provides identifier allocation and id-indexed collections for
// timed-automata models.
//
//	Overview
//
// Model files use several raw id conventions side by side: "L5" and "UL7"
// for locations, "E12" for edges, "System 3" for systems, bare positive
// integers for system members and free strings for component names. The
// package parses each of them through a Format into one canonical ID that
// remembers the exact raw value (so serialisation round-trips) and, where
// the raw value carries numbers, an order.
//
//	Building blocks
//
//   - ID: parsed identifier with optional Order (one number) or Orders
//     (composite ids) and a derived HigherOrder [count, sum].
//   - Store: owns the unique ids of one kind. Allocates from a raw value or
//     at the next free order, renames, releases.
//   - Map: associates live ids with members. Built on a Store.
//   - OwnedMap: view in which each id is owned by exactly one scope.
//   - SubsetMap: view that only sees ids activated through it.
//   - ProjectedMap: view that only sees one member Kind of a union.
//
//	Storage
//
// Store and Map share a three-tier table. Ids with an order live in a dense
// slice indexed by it, or in a map keyed by order once the order is too
// large for the slice; composite ids live in a [count][sum] grid of small
// buckets; everything else lives in a hash map. Lookups are O(1) in each
// tier. Iteration yields the ordered tier ascending, then the grid, then the
// hash tier in insertion order. The tiers are never merged into a single
// ordering.
//
// Two raw ids with the same order compete for the same slot whatever its
// size: once "L5" is allocated, "UL5" is taken.
//
//	Allocation
//
// NewOrderedID scans forward from a free cursor. Releasing an id rewinds
// the cursor to the freed order, so gaps are filled before the range grows.
// Deleting a member from a Map does not release its id: the raw value stays
// remembered to avoid reissuing it.
//
//	Rename
//
// Rename is the only multi-step mutation. It parses the target before
// touching anything, then unbinds the old key, rebinds the new key and moves
// the slot of every Map built on the store, without yielding in between.
// A taken target reports false and leaves everything unchanged. Other
// mutations attempted while a rename is in progress fail with ErrReentrant.
//
//	Errors
//
// ErrIDTaken (from NewIDFromRaw) and false results (from Rename, Has, Get)
// are ordinary conditions a user can resolve. Everything else is an
// *InvariantError wrapping one of the Err* sentinels: a programming error.
// Views check their own pre-conditions before delegating, so the reported
// error names the first broken invariant.
//
//	Concurrency
//
// Nothing in this package is safe for concurrent use. Mutate through the
// most specific view: bypassing a view and mutating the shared Map directly
// silently desynchronises that view's bookkeeping.
package ids
