// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard
// input:
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers and timestamp
//   - Sequence: a series of key events forming one bindable unit
//
// # Canonical descriptions
//
// Every event and sequence has a canonical textual description
// (Describe). Equality throughout the overlay system is defined on
// descriptions, never on raw struct fields, so two different internal
// encodings of the same keystroke always compare equal. Binding tables
// key their entries on sequence descriptions for the same reason.
//
// # Key specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Esc"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
//
// Sequences are space-separated specifications: "C-c p".
package key
