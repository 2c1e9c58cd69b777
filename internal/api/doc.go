// Package api exposes the studio to the browser client as a JSON HTTP
// API plus a Server-Sent Events stream of state snapshots.
//
// The API is a thin read/submit surface: the studio owns all state and
// all orchestration; handlers translate HTTP into studio calls and
// stream state revisions back out. Submissions are accepted with 202
// and run detached from the request, so a closed browser tab never
// cancels a generation in flight.
package api
