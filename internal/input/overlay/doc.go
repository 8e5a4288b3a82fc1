// Package overlay implements the bounded, prioritized pool of
// transient binding tables at the heart of the engine.
//
// A Registry owns up to N overlays (default 8) in an ordered sequence;
// order encodes dispatch priority, front first. Identities are reused
// only when their overlay is inactive — allocation scans from the back
// of the sequence for the least-recently-prioritized inactive overlay
// and discards its mapping. When every overlay is active, identity 1
// is reused unconditionally; that edge is preserved deliberately and
// covered by tests.
//
// The registry also carries the editing-session flag (whether new
// bindings merge into the front overlay) and the global dispatch
// switch, because both flip as side effects of registry operations:
// reprioritization ends an editing session, and disabling the last
// active overlay turns dispatch off.
//
// All mutation is funneled through Registry methods; overlays expose
// read-only accessors to the dispatch collaborator.
package overlay
