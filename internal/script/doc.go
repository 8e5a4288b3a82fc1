// Package script hosts sandboxed Lua user scripts that register named
// commands. The sandbox opens only the base, table, string, and math
// libraries.
package script
