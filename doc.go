/*
Package bigroot computes square roots of arbitrarily large non-negative integers
to any binary precision, using only exact integer arithmetic, and renders them
in any base from 2 to 36.

# Concept

The Calculator wraps two pieces. The engine extracts the root digit by digit
(restoring square root over groups of ShiftBits input bits). The converter turns
the resulting fixed-point value into "integer.fraction" digits. Precision is
rounded up to a whole number of digit groups, and results can be cached through
the ports.ResultStore port (in memory or in Redis).

# Key Features

  - Exact: the fraction is truncated, never rounded, and perfect squares are detected.
  - Any base: digits 0-9a-z, with trailing zeros trimmed by default.
  - Observable: lifecycle hooks report start, progress (in hundredths of a percent) and completion.
  - Cancellable: every call takes a context.Context.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"math/big"

		"github.com/aretw0/bigroot"
		"github.com/aretw0/bigroot/pkg/domain"
	)

	func main() {
		calc, err := bigroot.New()
		if err != nil {
			log.Fatal(err)
		}

		report, err := calc.Compute(context.Background(), domain.Query{
			Input:          big.NewInt(2),
			FractionalBits: 64,
			Base:           10,
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(report.Digits) // 1.41421356237309504876
	}
*/
package bigroot
