// Package lighter renders the status-line indicator that reflects the
// overlay registry: which overlay is in front and whether any overlay
// is active at all. Purely cosmetic.
package lighter
