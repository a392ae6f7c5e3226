package classify

import (
	"strings"
	"testing"

	"github.com/beaconhilldata/earmarker/internal/model"
)

func amt(v float64) *float64 { return &v }

func record(text string, amount *float64) *model.AmendmentRecord {
	return &model.AmendmentRecord{
		AmendmentNumber: "47",
		Chamber:         model.ChamberHouse,
		FiscalYear:      2026,
		RawText:         text,
		Amount:          amount,
	}
}

func TestClassify_DirectedLocalAppropriation(t *testing.T) {
	c := New(model.DefaultConfig().Classify)

	rec := record(
		"provided further, that not less than $50,000 shall be expended "+
			"for the Attleboro Youth Center renovation project",
		amt(50000),
	)

	got := c.Classify(rec)
	if !got.IsEarmark {
		t.Fatalf("expected earmark, got: %s", got.Reasoning)
	}
	if got.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95 (clamped)", got.Confidence)
	}
	if !got.GeographicSpecific || !got.OrganizationSpecific || !got.ProjectSpecific || !got.AmountInRange {
		t.Errorf("signal flags incomplete: %+v", got)
	}
	if got.RoutineIndicators {
		t.Error("routine flag should be clear")
	}
	if !strings.Contains(got.Reasoning, "earmark boilerplate") {
		t.Errorf("reasoning missing boilerplate term: %s", got.Reasoning)
	}
}

func TestClassify_RoutineStatewideItem(t *testing.T) {
	c := New(model.DefaultConfig().Classify)

	rec := record(
		"for the operating expenses and personnel salaries of the department, "+
			"administered by the commissioner, statewide",
		nil,
	)

	got := c.Classify(rec)
	if got.IsEarmark {
		t.Fatalf("expected non-earmark, got: %s", got.Reasoning)
	}
	if got.Confidence != 0.1 {
		t.Errorf("confidence = %v, want 0.1 (clamped)", got.Confidence)
	}
	if !got.RoutineIndicators {
		t.Error("routine flag should be set")
	}
	if got.AmountInRange {
		t.Error("nil amount must not count as in range")
	}
}

func TestClassify_GenericGeographicForm(t *testing.T) {
	c := New(model.DefaultConfig().Classify)

	// Northborough is not in the gazetteer; the "city of" form still
	// counts as geographic specificity.
	rec := record("shall be expended in the city of Northborough", amt(100000))

	got := c.Classify(rec)
	if !got.GeographicSpecific {
		t.Errorf("expected geographic flag: %s", got.Reasoning)
	}
}

func TestClassify_ExtraLocalities(t *testing.T) {
	cfg := model.DefaultConfig().Classify
	cfg.ExtraLocalities = []string{"northborough"}
	c := New(cfg)

	rec := record("improvements throughout northborough", amt(100000))
	if got := c.Classify(rec); !got.GeographicSpecific {
		t.Errorf("extra locality not recognized: %s", got.Reasoning)
	}
}

func TestClassify_BoilerplateIsMonotonic(t *testing.T) {
	c := New(model.DefaultConfig().Classify)

	// One boilerplate phrase, then the same text with one more appended.
	// Neither text carries any other signal, so the extra phrase is the
	// only difference and must not lower the confidence.
	base := c.Classify(record("funds allocated for the purpose of a community celebration", nil))
	ext := c.Classify(record("funds allocated for the purpose of a community celebration, for the benefit of local residents", nil))

	if ext.Confidence < base.Confidence {
		t.Errorf("extra boilerplate phrase lowered confidence: %v -> %v", base.Confidence, ext.Confidence)
	}
	if ext.Confidence == base.Confidence {
		t.Errorf("extra boilerplate phrase did not register: %v\n%s", ext.Confidence, ext.Reasoning)
	}
}

func TestClassify_LargeAmountAloneIsNotAnEarmark(t *testing.T) {
	c := New(model.DefaultConfig().Classify)

	// $5M with no boilerplate, geographic, or organization signals: the
	// amount is out of range and the penalty pushes the score down.
	got := c.Classify(record("an increased allocation across several agencies", amt(5000000)))

	if got.IsEarmark {
		t.Fatalf("expected non-earmark, got: %s", got.Reasoning)
	}
	if got.AmountInRange {
		t.Error("$5M must not count as in range")
	}
	if got.Confidence != 0.1 {
		t.Errorf("confidence = %v, want 0.1 (clamped)", got.Confidence)
	}
	if !strings.Contains(got.Reasoning, "large amount penalty") {
		t.Errorf("missing penalty term: %s", got.Reasoning)
	}
}

func TestClassify_LargeAmountPenaltyIsMonotonic(t *testing.T) {
	c := New(model.DefaultConfig().Classify)
	text := "provided that funds shall be expended for the Worcester Boys and Girls Club building renovation"

	small := c.Classify(record(text, amt(50000)))
	large := c.Classify(record(text, amt(2500000)))
	huge := c.Classify(record(text, amt(50000000)))

	if small.Confidence < large.Confidence {
		t.Errorf("confidence should not rise with amount: %v -> %v", small.Confidence, large.Confidence)
	}
	if large.Confidence < huge.Confidence {
		t.Errorf("confidence should not rise with amount: %v -> %v", large.Confidence, huge.Confidence)
	}
	if !strings.Contains(large.Reasoning, "large amount penalty") {
		t.Errorf("missing penalty term: %s", large.Reasoning)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(model.DefaultConfig().Classify)
	rec := record(
		"provided that $75,000 shall be expended for the Springfield food pantry "+
			"equipment upgrade program",
		amt(75000),
	)

	first := c.Classify(rec)
	for i := 0; i < 5; i++ {
		if got := c.Classify(rec); got != first {
			t.Fatalf("classification varies between runs:\n%+v\n%+v", first, got)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated line break", "renova-\ntion of the park", "renovation of the park"},
		{"collapse whitespace", "a  b\t c", "a b c"},
		{"typographic dash", "FY2026–2027", "FY2026-2027"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
