package extract

import "testing"

func TestAmount_Precedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"k suffix wins over bare number", "$50K", 50000, true},
		{"m suffix with decimal", "$1.5M", 1500000, true},
		{"dollar format with commas", "not less than $250,000 shall be expended", 250000, true},
		{"dollar format with cents", "a fee of $1,234.56", 1234.56, true},
		{"bare number at least 1000", "appropriating 25000 for repairs", 25000, true},
		{"bare number below 1000 rejected", "section 42 of chapter 6", 0, false},
		{"k requires word boundary", "shall make improvements", 0, false},
		{"no numerals", "provided that funds be expended", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Amount(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAmount_KSuffixBeatsDollarPattern(t *testing.T) {
	// "$50K" also matches the $-prefixed pattern as 50; the K path must
	// be tried first and win.
	got, ok := Amount("an earmark of $50K for the program")
	if !ok || got != 50000 {
		t.Errorf("expected 50000, got %v (ok=%v)", got, ok)
	}
}

func TestLineItem(t *testing.T) {
	if got, ok := LineItem("Line item 7000-1234 is amended"); !ok || got != "7000-1234" {
		t.Errorf("got %q (ok=%v), want 7000-1234", got, ok)
	}
	if _, ok := LineItem("no code here 123-45"); ok {
		t.Error("expected no match for short code")
	}
}

func TestAmendmentNumber_TriggerOrdering(t *testing.T) {
	// Leading-numeral form.
	if got, ok := AmendmentNumber("47 Massachusetts Cultural Council"); !ok || got != "47" {
		t.Errorf("got %q (ok=%v), want 47", got, ok)
	}

	// Secondary "Amendment #N" form without a leading numeral.
	if got, ok := AmendmentNumber("Some discussion of Amendment #47 details"); !ok || got != "47" {
		t.Errorf("got %q (ok=%v), want 47 via secondary pattern", got, ok)
	}

	// Leading numeral must be followed by a capitalized word.
	if _, ok := AmendmentNumber("1234 and further provided"); ok {
		t.Error("lowercase continuation should not trigger")
	}

	// Numbers longer than 4 digits are line items, not amendment numbers.
	if _, ok := AmendmentNumber("70001234 Title"); ok {
		t.Error("5+ digit numeral should not trigger")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"for an inclusive playground in the city of Attleboro", "Attleboro", true},
		{"services throughout Worcester County", "Worcester County", true},
		{"programs in Barnstable County communities", "Barnstable County", true},
		{"located in New Bedford", "New Bedford", true},
		// Deny-listed capitalized words never count as places.
		{"in Massachusetts for operating expenses", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Location(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Location(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOrganization(t *testing.T) {
	if got, ok := Organization("shall be expended for the Attleboro Youth Center"); !ok || got != "Attleboro Youth Center" {
		t.Errorf("got %q (ok=%v)", got, ok)
	}

	if got, ok := Organization("funds for an inclusive playground project"); !ok || got != "an inclusive playground project" {
		t.Errorf("got %q (ok=%v)", got, ok)
	}

	// Too-short captures are rejected.
	if _, ok := Organization("to fund a gym"); ok {
		t.Error("expected short capture to be rejected")
	}
}

func TestPrimarySponsor(t *testing.T) {
	if got, ok := PrimarySponsor("Primary Sponsor: Representative Susan Hawkins"); !ok || got != "Representative Susan Hawkins" {
		t.Errorf("got %q (ok=%v)", got, ok)
	}

	// Trailing line-item column fragment is stripped.
	if got, ok := PrimarySponsor("Primary Sponsor: Smith, John 7000"); !ok || got != "Smith, John" {
		t.Errorf("got %q (ok=%v)", got, ok)
	}

	if _, ok := PrimarySponsor("Cosponsor: Jones"); ok {
		t.Error("expected no match without the Primary Sponsor label")
	}
}
