package game

import "testing"

func TestTierRoundTrip(t *testing.T) {
	names := []string{"F", "E", "D", "C", "B", "A", "S", "SS", "SSS"}
	for _, name := range names {
		tier, err := ParseTier(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if tier.String() != name {
			t.Fatalf("round trip %q -> %q", name, tier.String())
		}
		if !tier.Valid() {
			t.Fatalf("tier %q should be valid", name)
		}
	}
}

func TestTierParseRejectsUnknown(t *testing.T) {
	for _, bad := range []string{"", "f", "X", "SSSS", "A+"} {
		if _, err := ParseTier(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	if !TierSSS.AtLeast(TierF) {
		t.Fatalf("SSS must sit at or above F")
	}
	if TierF.AtLeast(TierE) {
		t.Fatalf("F must not sit at or above E")
	}
	if !TierB.AtLeast(TierB) {
		t.Fatalf("a tier is at least itself")
	}
}
