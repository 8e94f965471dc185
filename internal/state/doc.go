// Package state holds the per-view state of the collection view and the pure
// functions that derive what it displays.
//
// # Overview
//
// A Collection is owned by exactly one view instance. It is built in the
// loading phase with the default query (empty search, title, ascending) and
// thrown away when the view goes away; nothing here is shared or persisted.
//
// # Phases
//
//	Loading ──ok──> Ready ──delete ok──> Ready (book removed, 3s notice)
//	   │              │
//	   └──fail──> ErrorLoading ──retry──> Loading
//	                  Ready ──delete fail──> Ready (inline error)
//
// # Projection
//
// The displayed list is always Project(books, query): filter by a
// case-insensitive substring of title, author or genre, then a stable sort on
// the chosen field. Nothing derived is stored, so the list can never drift
// from the books it was computed from.
//
// # Notices
//
// Notices carry a sequence number. The timer that expires a notice reports
// the sequence it was started for, so a stale timer never clears a newer
// notice. A Handoff delivers a message across a navigation exactly once.
//
// Collections are only touched from the UI update loop and are not safe for
// concurrent use.
package state
