// Package filename owns the artifact filename convention:
//
//	{identifier}_{category}_{NN}_Field_{YYYYMMDD}[_REV{n}].pdf
//
// The identifier and category are known to the caller at scan time, so the
// parser works on the suffix that follows them; the grammar is expressed with
// parsly tokens rather than regular expressions.
package filename

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/parsly"
)

const (
	fieldLabel    = "Field"
	revisionLabel = "REV"

	// DateLayout is the field-date format embedded in filenames.
	DateLayout = "20060102"

	// Extension is the artifact file extension.
	Extension = ".pdf"
)

// Info is the decoded suffix of an artifact filename.
type Info struct {
	Sequence   int
	FieldDate  string
	IsRevision bool
	Revision   int
}

// Build composes a filename from its parts. revision zero means the original
// (non-revision) artifact.
func Build(identifier, category string, sequence int, fieldDate time.Time, revision int) string {
	var sb strings.Builder
	sb.WriteString(identifier)
	sb.WriteByte('_')
	sb.WriteString(category)
	sb.WriteByte('_')
	sb.WriteString(fmt.Sprintf("%02d", sequence))
	sb.WriteByte('_')
	sb.WriteString(fieldLabel)
	sb.WriteByte('_')
	sb.WriteString(fieldDate.Format(DateLayout))
	if revision > 0 {
		sb.WriteByte('_')
		sb.WriteString(revisionLabel)
		sb.WriteString(strconv.Itoa(revision))
	}
	sb.WriteString(Extension)
	return sb.String()
}

// Prefix returns the fixed identifier/category prefix the parser expects to
// have been stripped: "{identifier}_{category}_".
func Prefix(identifier, category string) string {
	return identifier + "_" + category + "_"
}

// Parse decodes an artifact filename given the identifier and category it
// belongs to. Names that do not follow the convention return an error and are
// ignored by the sequence scan.
func Parse(name, identifier, category string) (*Info, error) {
	prefix := Prefix(identifier, category)
	if !strings.HasPrefix(name, prefix) {
		return nil, fmt.Errorf("filename %q does not belong to %v/%v", name, identifier, category)
	}
	return ParseSuffix([]byte(name[len(prefix):]))
}

// ParseSuffix decodes "NN_Field_YYYYMMDD[_REVn].pdf".
func ParseSuffix(input []byte) (*Info, error) {
	cursor := parsly.NewCursor("", input, 0)
	info := &Info{}

	// Sequence number within the category
	matched := cursor.MatchOne(numberToken)
	if matched.Code != numberToken.Code {
		return nil, cursor.NewError(numberToken)
	}
	info.Sequence, _ = strconv.Atoi(matched.Text(cursor))

	if matched = cursor.MatchOne(underscoreToken); matched.Code != underscoreToken.Code {
		return nil, cursor.NewError(underscoreToken)
	}

	// The literal Field marker
	if matched = cursor.MatchOne(fieldToken); matched.Code != fieldToken.Code {
		return nil, cursor.NewError(fieldToken)
	}
	if matched = cursor.MatchOne(underscoreToken); matched.Code != underscoreToken.Code {
		return nil, cursor.NewError(underscoreToken)
	}

	// Field date
	if matched = cursor.MatchOne(dateToken); matched.Code != dateToken.Code {
		return nil, cursor.NewError(dateToken)
	}
	info.FieldDate = matched.Text(cursor)

	// Optional revision marker
	if matched = cursor.MatchOne(underscoreToken); matched.Code == underscoreToken.Code {
		if matched = cursor.MatchOne(revisionToken); matched.Code != revisionToken.Code {
			return nil, cursor.NewError(revisionToken)
		}
		text := matched.Text(cursor)
		info.Revision, _ = strconv.Atoi(text[len(revisionLabel):])
		info.IsRevision = true
	}

	// Extension
	if matched = cursor.MatchOne(dotToken); matched.Code != dotToken.Code {
		return nil, cursor.NewError(dotToken)
	}
	if matched = cursor.MatchOne(extensionToken); matched.Code != extensionToken.Code {
		return nil, cursor.NewError(extensionToken)
	}
	if cursor.Pos != cursor.InputSize {
		return nil, fmt.Errorf("unexpected trailing characters in %q", string(input))
	}
	return info, nil
}
