// Package studio implements the content studio's orchestration core.
//
// A Studio owns one in-memory session: the conversation transcript, the
// currently open content bundle, and the history of every bundle
// produced this session. One incoming message is either a fresh
// generation (article, then summary/illustration/web page in parallel,
// then a storyboard) or a refinement of a single field of the open
// bundle; a heuristic keyword router decides which.
//
// Concurrency model: at most one orchestration runs at a time, enforced
// by an in-flight guard at submission. Within a run, fan-out phases
// issue independent model calls and join on their collective
// completion. The session state is mutated only by the two
// orchestrators and only under the store's lock; readers receive
// consistent snapshots and are never exposed to mid-phase state.
//
// There is no cancellation: a submitted run proceeds to completion or
// failure. There is no persistence: state lives and dies with the
// process.
package studio
