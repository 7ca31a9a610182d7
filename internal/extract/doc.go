// Package extract turns free-form assistant replies into pattern fields.
//
// A reply such as
//
//	**Pattern Name:** Granny Square
//	NOTATION: ch4, 12 dc
//	1. Instructions: Round 1: sc around
//
// yields name, notation and instructions. Matching is a best-effort
// heuristic; a field with no header is simply missing from the result and
// Apply leaves the corresponding form value untouched.
package extract
