// Package model is the in-memory graph of a timed-automata project.
//
// A Workspace holds Projects. A Project holds Components (automata made of
// Locations and LocationEdges) and Systems (trees of ComponentInstances and
// Operators). Every entity is keyed by an ids.ID parsed with the format of
// its kind:
//
//	Location         L5, UL5, IL5 or any other string
//	LocationEdge     E12, composite strings such as E4.2, or any other string
//	Component        any non-empty string
//	System           System 2 or any other string
//	Project          Project 1 or any other string
//	System member    positive integer; 0 is the system root
//
// FromRaw and ToRaw bridge the graph and the persisted shapes in package
// types: LoadProject(raw).ToRaw() is structurally equal to raw for every
// legal file whose entities are listed in engine order.
//
// Expected failures a user can fix (a taken name, a rename target in use)
// come back as false results or as ErrDuplicateID. Errors satisfying
// ids.IsInvariant are defects in the caller.
package model
