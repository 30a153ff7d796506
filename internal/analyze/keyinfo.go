package analyze

import (
	"regexp"
	"strings"
)

// KeyInfo holds key facts pulled from a document by independent regex
// passes. Each list preserves document order; categories are not
// cross-deduplicated.
type KeyInfo struct {
	Dates          []string `json:"dates"`
	Numbers        []string `json:"numbers"`
	EmailAddresses []string `json:"email_addresses"`
	PhoneNumbers   []string `json:"phone_numbers"`
	Entities       []string `json:"important_entities"`
}

var (
	reDateNumericMDY = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reDateNumericYMD = regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)
	reDateWritten    = regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`)

	reDateAny = regexp.MustCompile(reDateNumericMDY.String() + `|` + reDateNumericYMD.String() + `|` + reDateWritten.String())

	reNumber = regexp.MustCompile(`\b\d+(?:[.,]\d+)*\b`)
	reEmail  = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	rePhone  = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b|\(\d{3}\)\s?\d{3}-\d{4}|\b\d{3}\.\d{3}\.\d{4}\b`)
	reEntity = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)
)

// entityStoplist drops capitalized function words that start a false
// entity match.
var entityStoplist = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "These": {}, "Those": {},
	"And": {}, "But": {}, "For": {}, "Not": {}, "With": {},
	"From": {}, "They": {}, "When": {}, "Where": {}, "What": {},
}

// ExtractKeyInfo runs the category passes over the text. Absence of
// matches yields empty lists, never an error.
func ExtractKeyInfo(text string) KeyInfo {
	info := KeyInfo{
		Dates:          []string{},
		Numbers:        []string{},
		EmailAddresses: []string{},
		PhoneNumbers:   []string{},
		Entities:       []string{},
	}

	dateSpans := reDateAny.FindAllStringIndex(text, -1)
	for _, span := range dateSpans {
		info.Dates = append(info.Dates, text[span[0]:span[1]])
	}

	// Digit runs inside a date match belong to Dates only.
	for _, span := range reNumber.FindAllStringIndex(text, -1) {
		if insideAny(span, dateSpans) {
			continue
		}
		info.Numbers = append(info.Numbers, text[span[0]:span[1]])
	}

	info.EmailAddresses = append(info.EmailAddresses, reEmail.FindAllString(text, -1)...)
	info.PhoneNumbers = append(info.PhoneNumbers, rePhone.FindAllString(text, -1)...)

	for _, ent := range reEntity.FindAllString(text, -1) {
		first, _, _ := strings.Cut(ent, " ")
		if _, stop := entityStoplist[first]; stop {
			continue
		}
		info.Entities = append(info.Entities, ent)
	}
	return info
}

func insideAny(span []int, spans [][]int) bool {
	for _, s := range spans {
		if span[0] >= s[0] && span[1] <= s[1] {
			return true
		}
	}
	return false
}
