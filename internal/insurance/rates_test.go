package insurance

import "testing"

func TestBracketsContiguousAndNonOverlapping(t *testing.T) {
	table := DefaultTable()
	sets := map[string][]Bracket{
		"labor":   table.LaborBrackets,
		"health":  table.HealthBrackets,
		"pension": table.PensionBrackets,
	}
	for name, brackets := range sets {
		if len(brackets) == 0 {
			t.Fatalf("%s table is empty", name)
		}
		if brackets[0].Min != 0 {
			t.Errorf("%s table must start at 0, starts at %d", name, brackets[0].Min)
		}
		for i := 1; i < len(brackets); i++ {
			prev, cur := brackets[i-1], brackets[i]
			if cur.Min != prev.Max+1 {
				t.Errorf("%s table gap/overlap between %+v and %+v", name, prev, cur)
			}
			if cur.Insured <= prev.Insured {
				t.Errorf("%s grades not strictly increasing: %d then %d", name, prev.Insured, cur.Insured)
			}
		}
	}
}

func TestInsuredSalaryStepFunction(t *testing.T) {
	table := DefaultTable()

	// Monotonically non-decreasing over a dense sweep.
	prevLabor, prevHealth := int64(0), int64(0)
	for s := int64(0); s <= 250000; s += 500 {
		labor := table.LaborInsured(s)
		health := table.HealthInsured(s)
		if labor < prevLabor {
			t.Fatalf("labor insured salary decreased at %d: %d < %d", s, labor, prevLabor)
		}
		if health < prevHealth {
			t.Fatalf("health insured salary decreased at %d: %d < %d", s, health, prevHealth)
		}
		prevLabor, prevHealth = labor, health
	}
}

func TestInsuredSalaryWithinBracket(t *testing.T) {
	table := DefaultTable()
	for _, b := range table.LaborBrackets {
		if got := table.LaborInsured(b.Min); got != b.Insured {
			t.Errorf("LaborInsured(%d) = %d, want %d", b.Min, got, b.Insured)
		}
		if got := table.LaborInsured(b.Max); got != b.Insured {
			t.Errorf("LaborInsured(%d) = %d, want %d", b.Max, got, b.Insured)
		}
	}
}

func TestInsuredSalaryFallbackCaps(t *testing.T) {
	table := DefaultTable()
	if got := table.LaborInsured(1_000_000); got != table.MaxLaborInsured {
		t.Errorf("labor cap = %d, want %d", got, table.MaxLaborInsured)
	}
	if got := table.HealthInsured(1_000_000); got != table.MaxHealthInsured {
		t.Errorf("health cap = %d, want %d", got, table.MaxHealthInsured)
	}
	if got := table.PensionInsured(1_000_000); got != table.MaxPensionInsured {
		t.Errorf("pension cap = %d, want %d", got, table.MaxPensionInsured)
	}
}

func TestPensionLadderTracksHealthUpToCap(t *testing.T) {
	table := DefaultTable()
	for _, b := range table.PensionBrackets {
		if b.Insured > table.MaxPensionInsured {
			t.Errorf("pension grade %d above cap %d", b.Insured, table.MaxPensionInsured)
		}
		if got := table.HealthInsured(b.Max); got != b.Insured {
			t.Errorf("pension grade %d diverges from health grade %d", b.Insured, got)
		}
	}
}
