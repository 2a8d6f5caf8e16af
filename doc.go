// Package calc implements a double-precision calculator for expressions typed
// by a person at a prompt.
//
// The syntax is ordinary infix arithmetic with a few additions. "a % b" is the
// remainder after truncating both operands to integers. "a r n" is the real
// n-th root of a. "a ^ b" is exponentiation and associates to the right, so
// "2^3^2" is 512. Signs bind tighter than exponentiation: "-2^2" is 4.
// Functions are always called with parentheses, as in "sqrt(16)" or
// "comb(8, 3)", and trigonometric functions work in degrees. The only names
// usable without parentheses are the constants pi and e. Names are matched
// without regard to case, but a lower case r always reads as the root
// operator, so the rounding function is written Round.
//
// Evaluation can record every intermediate operation into a Trace so that a
// caller can show how a result was reached.
//
package calc
