package filename

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	underscoreCode = iota
	dotCode
	numberCode
	dateCode
	fieldCode
	revisionCode
	extensionCode
)

// Token definitions
var (
	underscoreToken = parsly.NewToken(underscoreCode, "_", matcher.NewByte('_'))
	dotToken        = parsly.NewToken(dotCode, ".", matcher.NewByte('.'))
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
	dateToken       = parsly.NewToken(dateCode, "Date", newDateMatcher())
	fieldToken      = parsly.NewToken(fieldCode, "Field", newWordMatcher(fieldLabel))
	revisionToken   = parsly.NewToken(revisionCode, "Revision", newRevisionMatcher())
	extensionToken  = parsly.NewToken(extensionCode, "pdf", newWordMatcher("pdf"))
)

// Custom matchers
func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

func newDateMatcher() parsly.Matcher {
	return &dateMatcher{}
}

func newWordMatcher(word string) parsly.Matcher {
	return &wordMatcher{word: word}
}

func newRevisionMatcher() parsly.Matcher {
	return &revisionMatcher{}
}

// numberMatcher matches a run of decimal digits
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if !isDigit(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// dateMatcher matches exactly eight digits (YYYYMMDD)
type dateMatcher struct{}

func (m *dateMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+8 > size {
		return 0
	}
	for i := pos; i < pos+8; i++ {
		if !isDigit(input[i]) {
			return 0
		}
	}
	// Nine digits in a row is not a date
	if pos+8 < size && isDigit(input[pos+8]) {
		return 0
	}
	return 8
}

// wordMatcher matches an exact literal word
type wordMatcher struct {
	word string
}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+len(m.word) > size {
		return 0
	}
	if string(input[pos:pos+len(m.word)]) != m.word {
		return 0
	}
	return len(m.word)
}

// revisionMatcher matches the REV marker followed by its number, e.g. REV2
type revisionMatcher struct{}

func (m *revisionMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+len(revisionLabel) >= size {
		return 0
	}
	if string(input[pos:pos+len(revisionLabel)]) != revisionLabel {
		return 0
	}
	matched := len(revisionLabel)
	digits := 0
	for i := pos + matched; i < size; i++ {
		if !isDigit(input[i]) {
			break
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	return matched + digits
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
