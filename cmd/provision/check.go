package main

import (
	"fmt"
	"io"

	"salestrack/internal/metadata"
)

// runCheck verifies every lookup targets a list declared earlier.
func runCheck(out io.Writer, registry *metadata.Registry) error {
	violations := registry.CheckOrder()
	if len(violations) == 0 {
		fmt.Fprintf(out, "✓ %d lists, lookup order is valid\n", registry.Len())
		return nil
	}

	for _, v := range violations {
		fmt.Fprintf(out, "✗ %s\n", v.String())
	}
	return fmt.Errorf("%d lookup ordering violation(s)", len(violations))
}
