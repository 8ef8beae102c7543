/*
Package domain contains the core value types shared by the square-root engine,
the base converter and every adapter.

It is kept free of I/O and persistence. Arbitrary-precision values are *big.Int.

# Key Entities

  - SquareRootResult: integer part plus a fixed-point binary fraction (or a perfect-square flag).
  - Query: what a caller asks for (input, precision, output base).
  - Report: one fully rendered answer, ready for display.
  - LifecycleHooks: callbacks observing engine start, progress and completion.
*/
package domain
