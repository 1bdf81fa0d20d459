// Package calc implements the calculator's expression engine. An Engine
// accumulates digits into a current entry, commits operands and operators into
// an expression, and folds the expression strictly left to right on demand.
//
// There is no operator precedence: "2 + 3 × 4" evaluates as (2 + 3) × 4.
// Arithmetic failures never escape the engine; they show up as the "Error"
// entry and a reset state.
package calc
