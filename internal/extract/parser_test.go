package extract

import (
	"testing"
)

const sampleText = `MOTOR VEHICLE VALUATION REPORT
CLIENT NAME: John Doe CONTACTS: 0700000000
DESTINATION: MOMBASA PORT EXTRA TEXT HERE
REGISTRATION NO: KDA123B
ENGINE NO: 2NZ-4567890
CHASSIS NO: NCP165-0012345
COLOUR: White
BODY TYPE: Station Wagon
INSURANCE VALUE: KSH 1,250,000
Valuation Date: 30-10-2025
Examiner: (J-Mwangi)
`

func TestParseSample(t *testing.T) {
	f := Parse(sampleText)

	if f.CustomerName != "John Doe" {
		t.Errorf("CustomerName mismatch: got %q, want %q", f.CustomerName, "John Doe")
	}
	if f.Destination != "MOMBASA PORT" {
		t.Errorf("Destination mismatch: got %q, want %q", f.Destination, "MOMBASA PORT")
	}
	if f.RegNo != "KDA123B" {
		t.Errorf("RegNo mismatch: got %q, want %q", f.RegNo, "KDA123B")
	}
	if f.EngineNo != "2NZ-4567890" {
		t.Errorf("EngineNo mismatch: got %q, want %q", f.EngineNo, "2NZ-4567890")
	}
	if f.ChassisNo != "NCP165-0012345" {
		t.Errorf("ChassisNo mismatch: got %q, want %q", f.ChassisNo, "NCP165-0012345")
	}
	if f.Color != "White" {
		t.Errorf("Color mismatch: got %q, want %q", f.Color, "White")
	}
	if f.InsuranceValue != "KSH 1,250,000" {
		t.Errorf("InsuranceValue mismatch: got %q", f.InsuranceValue)
	}
	if f.Signatory != "J-Mwangi" {
		t.Errorf("Signatory mismatch: got %q, want %q", f.Signatory, "J-Mwangi")
	}
}

func TestParseClientNameStopsAtContacts(t *testing.T) {
	f := Parse("CLIENT NAME: JOHN DOE CONTACTS: 0700000000")
	if f.CustomerName != "JOHN DOE" {
		t.Errorf("CustomerName mismatch: got %q, want %q", f.CustomerName, "JOHN DOE")
	}
}

func TestParseDestinationFirstTwoTokens(t *testing.T) {
	f := Parse("DESTINATION: MOMBASA PORT EXTRA TEXT HERE")
	if f.Destination != "MOMBASA PORT" {
		t.Errorf("Destination mismatch: got %q, want %q", f.Destination, "MOMBASA PORT")
	}
}

func TestParseEngineSerialFallback(t *testing.T) {
	f := Parse("SOME HEADER\nFitted with unit INZ-88A71 at the port\n")
	if f.EngineNo != "INZ-88A71" {
		t.Errorf("EngineNo fallback mismatch: got %q, want %q", f.EngineNo, "INZ-88A71")
	}
}

func TestParseMissingFieldsAreEmpty(t *testing.T) {
	f := Parse("nothing recognizable here")
	if f.CustomerName != "" || f.EngineNo != "" || f.ChassisNo != "" || f.ValuationDate != "" {
		t.Errorf("expected empty fields, got %+v", f)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	a := Parse(sampleText)
	b := Parse(sampleText)
	if *a != *b {
		t.Errorf("parsing twice diverged: %+v vs %+v", a, b)
	}
}

func TestNormalizeSpaces(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  JOHN   DOE \n", "JOHN DOE"},
		{"a\tb\nc", "a b c"},
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeSpaces(c.in); got != c.want {
			t.Errorf("normalizeSpaces(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
