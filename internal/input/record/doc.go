// Package record implements macro recording: an in-progress Session
// that accumulates keystrokes, a Store of finished named macros, and a
// nested capture loop that suspends the enclosing interaction until
// the end marker arrives. Macros persist to disk as canonical
// sequence descriptions.
package record
