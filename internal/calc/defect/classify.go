package defect

import "fmt"

type Mechanism string

const (
	Corrosion Mechanism = "corrosion"
	Dent      Mechanism = "dent"
	Crack     Mechanism = "crack"
	Leak      Mechanism = "leak"
)

type Location string

const (
	External Location = "external"
	Internal Location = "internal"
)

// RepairClass follows ISO 24817 terminology: Type A repairs share load with
// the substrate, Type B repairs must contain the full pressure on their own.
type RepairClass string

const (
	TypeA RepairClass = "A"
	TypeB RepairClass = "B"
)

// SeverityThreshold is the wall-loss ratio above which the substrate is no
// longer trusted to share load, regardless of mechanism and location.
const SeverityThreshold = 0.65

// Classification tags the two sizing formulas independently. A dent is
// sized for thickness as load-sharing but bonded as full-transfer, so the
// two tags can differ.
type Classification struct {
	Thickness RepairClass `json:"thickness_class"`
	Overlap   RepairClass `json:"overlap_class"`
}

func ParseMechanism(s string) (Mechanism, error) {
	switch Mechanism(s) {
	case Corrosion, Dent, Crack, Leak:
		return Mechanism(s), nil
	}
	return "", fmt.Errorf("unknown defect mechanism %q", s)
}

func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case External, Internal:
		return Location(s), nil
	}
	return "", fmt.Errorf("unknown defect location %q", s)
}

// Classify applies the repair-class decision table. Pure function; the
// severity check overrides mechanism and location.
func Classify(mech Mechanism, loc Location, wallLoss float64) Classification {
	switch mech {
	case Leak, Crack:
		return Classification{Thickness: TypeB, Overlap: TypeB}
	case Dent:
		return Classification{Thickness: TypeA, Overlap: TypeB}
	}
	// Corrosion
	if loc == Internal || wallLoss > SeverityThreshold {
		return Classification{Thickness: TypeB, Overlap: TypeB}
	}
	return Classification{Thickness: TypeA, Overlap: TypeA}
}

// ThroughWall reports whether the mechanism implies a breached or untrusted
// pressure boundary, in which case the steel gets no capacity credit.
func ThroughWall(mech Mechanism) bool {
	return mech == Leak || mech == Crack
}
