// Package artifact defines the content types produced by the studio.
//
// A Content bundles every derived form of one topic: the main article,
// its short summary, a cover illustration, an embeddable web page
// fragment, and a multi-scene video storyboard. Content values are
// created by the generation pipeline and replaced whole on refinement;
// individual fields are never mutated in place once a value has been
// handed to a reader.
//
// Thread Safety: the types here are plain data. Callers that share a
// Content across goroutines must hand out copies via Clone.
package artifact
