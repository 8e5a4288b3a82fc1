// Package obtain implements binding acquisition: the builtin
// strategies that interactively obtain a (key, action) pair, the
// rank-selected strategy chain, and the repeat-argument rank
// derivation. Every key read goes through the quit-guarded reader, so
// a quit press unwinds the whole acquisition with no partial state.
package obtain
