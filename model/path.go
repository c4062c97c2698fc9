package model

import (
	"fmt"
	"io"
	"strings"
)

// Path is a concrete trace over States: either finite, or an infinite
// lasso (finite prefix plus a cycle back to an earlier state).
type Path struct {
	States     []*State
	Infinite   bool
	LassoPoint int // valid only when Infinite: index the cycle closes back to
}

// Print writes the header row "v0 v1 ..." followed by one row per state's
// bit assignment, marking the lasso cut with "Begin Loop" for infinite
// paths.
func (p *Path) Print(w io.Writer) error {
	if len(p.States) == 0 {
		return nil
	}
	bits := len(p.States[0].Assign())
	header := make([]string, bits)
	for i := range header {
		header[i] = fmt.Sprintf("v%d", i)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, " ")); err != nil {
		return err
	}
	for i, s := range p.States {
		if p.Infinite && i == p.LassoPoint {
			if _, err := fmt.Fprintln(w, "Begin Loop"); err != nil {
				return err
			}
		}
		row := make([]string, bits)
		for j, bit := range s.Assign() {
			if bit {
				row[j] = "1"
			} else {
				row[j] = "0"
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
