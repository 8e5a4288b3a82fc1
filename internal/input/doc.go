// Package input wires the overlay registry, acquisition chains, and
// macro recording into the Engine: the single choke point for binding
// mutation and the home of every user-facing command.
package input
