// Package lut provides table-driven sine and cosine of a fractional phase.
//
// A phase is given in cycles, x in [0, 1), and the functions return
// approximations of sin(2*pi*x) and cos(2*pi*x). The value is read from the
// nearest of [Resolution] precomputed knots and corrected with a second-order
// Taylor expansion around that knot:
//
//	sin(2pi(x0+d)) ~ sin(2pi x0) + d*2pi*cos(2pi x0) - d^2*2pi^2*sin(2pi x0)
//
// The tables hold one full period plus a quarter period of overlap, so the
// cosine tables are the sine tables read at a fixed offset.
//
// The tables are built once, on first use, and are read-only afterwards. All
// functions are safe for concurrent use.
package lut
