// Package compute holds the number-crunching example services.
package compute

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Computer writes a computed report to w.
type Computer interface {
	Compute(w io.Writer) error
}

// NumberComputer returns the nth Fibonacci number.
type NumberComputer interface {
	Number(n int) int
}

// ── Fibonacci ─────────────────────────────────────────────────────────────────

// FibonacciNumber computes Fibonacci numbers iteratively.
type FibonacciNumber struct{}

func (FibonacciNumber) Number(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// FibonacciSequence prints the first Count Fibonacci numbers.
type FibonacciSequence struct {
	numbers NumberComputer
	count   int
}

// NewFibonacciSequence returns a FibonacciSequence over numbers.
func NewFibonacciSequence(numbers NumberComputer, count int) *FibonacciSequence {
	return &FibonacciSequence{numbers: numbers, count: count}
}

func (s *FibonacciSequence) Sequence() []int {
	out := make([]int, s.count)
	for i := range out {
		out[i] = s.numbers.Number(i)
	}
	return out
}

func (s *FibonacciSequence) Compute(w io.Writer) error {
	_, err := fmt.Fprintf(w, "The first %d numbers in the Fibonacci sequence are:\n%s\n", s.count, join(s.Sequence()))
	return err
}

// ── Squares ───────────────────────────────────────────────────────────────────

// SquareComputer prints the first Count squares.
type SquareComputer struct {
	count int
}

func NewSquareComputer(count int) *SquareComputer {
	return &SquareComputer{count: count}
}

func (s *SquareComputer) Squares() []int {
	out := make([]int, s.count)
	for i := range out {
		out[i] = i * i
	}
	return out
}

func (s *SquareComputer) Compute(w io.Writer) error {
	_, err := fmt.Fprintf(w, "The first %d squares are:\n%s\n", s.count, join(s.Squares()))
	return err
}

func join(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
