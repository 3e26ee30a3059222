// Package render projects cached contacts into display models.
//
// Everything here is a pure function of its inputs: Table turns a contact
// list into rows with badges and per-row affordances, GroupOptions and
// BlacklistOptions build the filter selectors, and WriteHTML serializes a
// table for export. Surfaces choose the escaper; the TUI strips terminal
// control characters while the HTML export escapes markup.
package render
