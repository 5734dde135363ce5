// Package gamelog provides the action log of a fuse game: the closed set of
// actions a player can record, the append-only Log that orders them, the
// wire format used by every storage backend, and a Redis-backed store.
//
// # Actions
//
// Four actions exist:
//
//   - Discard and Play remove a card from the table. The card is named by
//     type (YELLOW-3) or by instance (YELLOW-3-1) and may carry the hand
//     position it left.
//   - Hint records that a set of hand positions all share a color or rank.
//   - Restore corrects an earlier Discard or Play by returning one physical
//     card to play.
//
// Action is a sealed interface. Code that switches over actions handles the
// four concrete types and panics on anything else, so a new action kind
// fails loudly in every fold until it is handled.
//
// # Log
//
// A Log only grows by Append and only shrinks by DropLast. Entries returns a
// copy, so a snapshot handed to the derivation engine never changes under
// it.
//
// # Redis Schema
//
// All keys are namespaced by game id:
//
//	Log:        fuse:{game_id}:log          (LIST of JSON records)
//	Log events: fuse:{game_id}:log_events   (Pub/Sub channel)
package gamelog
