package extract

// Regex-driven field parsing of Thamini valuation text. Rules for each
// field run in order from label-anchored to heuristic fallback; the
// first pattern with a match wins, so a broad fallback never shadows a
// precise label.

import (
	"regexp"
	"strings"
)

var (
	customerNameRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)CLIENT NAME[:\s]*([A-Z][\w\s.\-,'()]+?)(?:CONTACTS:|\n|DESTINATION:|$)`),
		regexp.MustCompile(`(?i)CLIENT NAME[:\s]*([^\n\r]+)`),
		regexp.MustCompile(`(?i)CLIENT[:\s]*([A-Z][\w\s.\-,'()]+?)(?:\n|$)`),
	}
	destinationRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)DESTINATION\s*:?\s*([A-Z][\w\s.\-&,]+)`),
		regexp.MustCompile(`(?i)DESTINATION\s*:?\s*([^\n]+)`),
	}
	regNoRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)REGISTRATION NO[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)VEHICLE REG NO[:\s]*([A-Z0-9-]+)`),
		// Bare Kenyan plate shape, last resort
		regexp.MustCompile(`(?i)\b([A-Z]{3}\s*\d{3,4}[A-Z]?)\b`),
	}
	engineNoRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ENGINE NO[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)ENGINE NUMBER[:\s]*([A-Z0-9-]+)`),
	}
	// Known serial prefix convention, tried only when the labeled engine
	// rules found nothing
	engineNoFallback = regexp.MustCompile(`\b(INZ-[A-Z0-9]+)\b`)

	chassisNoRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)CHASSIS NO[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)CHASSIS NUMBER[:\s]*([A-Z0-9-]+)`),
	}
	colorRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)COLOU?R[:\s]*([A-Za-z]+)`),
	}
	bodyTypeRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)BODY TYPE[:\s]*([A-Za-z][A-Za-z /-]*)`),
		regexp.MustCompile(`(?i)\bBODY[:\s]*([A-Za-z]+)`),
	}
	insuranceValueRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)INSURANCE VALUE[:\s]*((?:KSHS?|KES)?\s*[0-9][0-9,.]*)`),
		regexp.MustCompile(`(?i)(?:SUM INSURED|ASSESSED VALUE|MARKET VALUE)[:\s]*((?:KSHS?|KES)?\s*[0-9][0-9,.]*)`),
	}
	valuationDateRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)VALUATION DATE[:\s]*([0-3]?\d[/\-\s][A-Za-z0-9\-\s/]+)`),
		regexp.MustCompile(`(?i)VALUATION DATE[:\s]*(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`(?i)DATE OF INSPECTION[:\s]*([0-3]?\d[/\-\s][A-Za-z0-9\-\s/]+)`),
	}
	signatoryRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)EXAMINER[:\s]*\(?([A-Za-z0-9-]+)\)?`),
		regexp.MustCompile(`(?i)SIGNATORY NAME[:\s]*([A-Za-z\s.]+)`),
	}

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// findOne tries patterns in order and returns the first capture group.
// A capture of pure whitespace still counts as a match; normalization
// empties it afterwards.
func findOne(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// normalizeSpaces collapses whitespace runs (including newlines) to a
// single space and trims the ends
func normalizeSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// firstTokens returns the first n whitespace-separated tokens of s
func firstTokens(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// Parse applies the recognizer rules to the full extracted text and
// returns the field mapping. Extraction is best-effort: absence of a
// field is never an error, only an empty string.
func Parse(text string) *ExtractedFields {
	f := &ExtractedFields{}

	f.CustomerName, _ = findOne(text, customerNameRules)
	f.Destination, _ = findOne(text, destinationRules)
	f.RegNo, _ = findOne(text, regNoRules)
	f.ChassisNo, _ = findOne(text, chassisNoRules)
	f.Color, _ = findOne(text, colorRules)
	f.BodyType, _ = findOne(text, bodyTypeRules)
	f.InsuranceValue, _ = findOne(text, insuranceValueRules)
	f.ValuationDate, _ = findOne(text, valuationDateRules)
	f.Signatory, _ = findOne(text, signatoryRules)

	engineNo, ok := findOne(text, engineNoRules)
	if !ok {
		if m := engineNoFallback.FindStringSubmatch(text); m != nil {
			engineNo = m[1]
		}
	}
	f.EngineNo = engineNo

	f.CustomerName = normalizeSpaces(f.CustomerName)
	f.Destination = normalizeSpaces(f.Destination)
	f.RegNo = normalizeSpaces(f.RegNo)
	f.EngineNo = normalizeSpaces(f.EngineNo)
	f.ChassisNo = normalizeSpaces(f.ChassisNo)
	f.Color = normalizeSpaces(f.Color)
	f.BodyType = normalizeSpaces(f.BodyType)
	f.InsuranceValue = normalizeSpaces(f.InsuranceValue)
	f.ValuationDate = normalizeSpaces(f.ValuationDate)
	f.Signatory = normalizeSpaces(f.Signatory)

	// Destination labels are often followed by boilerplate; keep the
	// first two tokens only
	f.Destination = firstTokens(f.Destination, 2)

	return f
}
