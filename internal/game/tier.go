package game

import "fmt"

// Tier is the 9-step company ladder, weakest to strongest. The zero value
// is not a valid tier; parse input at the store boundary.
type Tier int

const (
	TierF Tier = iota + 1
	TierE
	TierD
	TierC
	TierB
	TierA
	TierS
	TierSS
	TierSSS
)

var tierNames = [...]string{"F", "E", "D", "C", "B", "A", "S", "SS", "SSS"}

func (t Tier) String() string {
	if t < TierF || t > TierSSS {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t-1]
}

func (t Tier) Valid() bool {
	return t >= TierF && t <= TierSSS
}

// AtLeast reports whether t sits at or above other on the ladder. Event
// eligibility uses this as a floor: an SSS company can still draw events
// flavored for tier F.
func (t Tier) AtLeast(other Tier) bool {
	return t >= other
}

func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}
