package netlist

import (
	"sort"
	"strconv"
	"strings"
)

// FilterOptions controls which components are considered for a BOM.
type FilterOptions struct {
	ExcludeDNP bool
}

// Interesting returns the components that belong on a BOM: power flags
// and other virtual symbols (references starting with '#') and
// components marked exclude_from_bom are dropped, and DNP components too
// when requested. Input order is preserved.
func Interesting(comps []*Component, opts FilterOptions) []*Component {
	out := make([]*Component, 0, len(comps))
	for _, c := range comps {
		if strings.HasPrefix(c.Ref, "#") || c.ExcludeFromBOM {
			continue
		}
		if opts.ExcludeDNP && c.DNP {
			continue
		}
		out = append(out, c)
	}
	return out
}

// OnBoard returns the components that are placed on the board: virtual
// symbols and components marked exclude_from_board are dropped.
func OnBoard(comps []*Component) []*Component {
	out := make([]*Component, 0, len(comps))
	for _, c := range comps {
		if strings.HasPrefix(c.Ref, "#") || c.ExcludeFromBoard {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SortByReference returns a copy of comps in natural reference order:
// prefix lexically, then numeric suffix (R2 before R10), then any tail.
func SortByReference(comps []*Component) []*Component {
	out := make([]*Component, len(comps))
	copy(out, comps)
	sort.SliceStable(out, func(i, j int) bool {
		return RefLess(out[i].Ref, out[j].Ref)
	})
	return out
}

// RefLess reports whether reference a sorts before b in natural order.
func RefLess(a, b string) bool {
	pa, na, ta := splitRef(a)
	pb, nb, tb := splitRef(b)
	if pa != pb {
		return pa < pb
	}
	if na != nb {
		return na < nb
	}
	return ta < tb
}

// splitRef splits "U12A" into ("U", 12, "A"). A missing number is -1.
func splitRef(ref string) (prefix string, num int, tail string) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	j := i
	for j < len(ref) && ref[j] >= '0' && ref[j] <= '9' {
		j++
	}
	if i == j {
		return ref, -1, ""
	}
	n, err := strconv.Atoi(ref[i:j])
	if err != nil {
		return ref, -1, ""
	}
	return ref[:i], n, ref[j:]
}
