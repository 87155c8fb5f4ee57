package attackcsv

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidBundle      = errors.New("invalid bundle")
	ErrUnsupportedVersion = errors.New("unsupported STIX version")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrInvalidMode        = errors.New("invalid text mode")
	ErrInvalidBorder      = errors.New("invalid border style")
)

const (
	// AttackIDColumn is the derived identifier column added when
	// Options.DerivedID is set.
	AttackIDColumn = "mitre_attack_id"
	// AttackSource is the external_references source_name that carries the
	// ATT&CK catalog ID.
	AttackSource = "mitre-attack"
	// DescriptionColumn is the free-text column passed through [Rewrite].
	DescriptionColumn = "description"
)

// Options configures header synthesis and record projection.
type Options struct {
	// DerivedID adds the mitre_attack_id column.
	DerivedID bool
	// Mode is the rewrite mode applied to the description column.
	Mode Mode
}

// Format represents an output format.
type Format string

const (
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{CSV, TSV, JSON, JSONL, YAML, Markdown, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go text/template.
// The template is executed against the row's column map.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension, including the dot, used for files in
// format f.
func (f Format) Ext() string {
	switch f {
	case Markdown:
		return ".md"
	case CSV, TSV, JSON, JSONL, YAML, HTML:
		return "." + string(f)
	default:
		return ".txt"
	}
}

// Mode returns the rewrite mode suited to format f. Only HTML output keeps
// markup in the description column.
func (f Format) Mode() Mode {
	if f == HTML {
		return ModeHTML
	}
	return ModePlain
}
