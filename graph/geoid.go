package graph

import "fmt"

// Kind identifies the level of census geography a GeoId refers to.
type Kind int

const (
	// State is the coarsest geography kind.
	State Kind = iota
	County
	Tract
	BlockGroup
	VTD
	Block
)

// String renders a Kind for diagnostics and logging.
func (k Kind) String() string {
	switch k {
	case State:
		return "state"
	case County:
		return "county"
	case Tract:
		return "tract"
	case BlockGroup:
		return "block_group"
	case VTD:
		return "vtd"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// GeoId identifies a census geography unit by kind and its canonical
// string code (e.g. a 15-digit block GEOID). Leading zeros in the code are
// significant and must never be stripped.
type GeoId struct {
	Kind Kind
	Code string
}

// String returns the canonical code, unchanged.
func (g GeoId) String() string { return g.Code }

// Parent returns the GeoId obtained by truncating Code to the prefix length
// appropriate for the target (coarser) kind. It panics if target is not
// coarser than g.Kind, or if target is VTD: VTD codes do not nest inside
// block codes by prefix, so they cannot be derived by truncation.
func (g GeoId) Parent(target Kind) GeoId {
	if target >= g.Kind {
		panic(fmt.Sprintf("graph: GeoId.Parent(%s) called on finer-or-equal kind %s", target, g.Kind))
	}
	if target == VTD {
		panic("graph: GeoId.Parent(vtd): vtd codes are not prefix-derivable")
	}
	n := prefixLength(target)
	if n > len(g.Code) {
		n = len(g.Code)
	}
	return GeoId{Kind: target, Code: g.Code[:n]}
}

// prefixLength returns the canonical FIPS-style code length for a geography
// kind, used by Parent to truncate a finer code into a coarser one.
func prefixLength(k Kind) int {
	switch k {
	case State:
		return 2
	case County:
		return 5
	case Tract:
		return 11
	case BlockGroup:
		return 12
	case Block:
		return 15
	default:
		return 0
	}
}
