package attackcsv

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// SupportedVersions lists the accepted bundle spec_version values.
var SupportedVersions = []string{"2.0", "2.1"}

// Bundle is a STIX bundle: a version tag and a flat list of objects.
//
// A nil Objects slice means the "objects" key was absent; an empty slice is
// a valid, empty bundle.
type Bundle struct {
	Type        string   `json:"type,omitempty"`
	ID          string   `json:"id,omitempty"`
	SpecVersion string   `json:"spec_version"`
	Objects     []Record `json:"objects"`
}

// Decode reads a bundle from r. It does not validate; call [Bundle.Validate].
func Decode(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	return b, nil
}

// Validate checks the two required top-level keys and the version.
func (b Bundle) Validate() error {
	if b.SpecVersion == "" {
		return fmt.Errorf("%w: missing spec_version", ErrInvalidBundle)
	}
	if b.Objects == nil {
		return fmt.Errorf("%w: missing objects", ErrInvalidBundle)
	}
	if !slices.Contains(SupportedVersions, b.SpecVersion) {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, b.SpecVersion)
	}
	return nil
}

// Lookup finds an object by its STIX id or by its ATT&CK ID (for example
// "T1548.001"). ATT&CK IDs are matched case-insensitively.
func (b Bundle) Lookup(id string) (Record, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, false
	}
	for _, r := range b.Objects {
		if r.Text("id") == id {
			return r, true
		}
		if aid, ok := r.AttackID(); ok && strings.EqualFold(aid, id) {
			return r, true
		}
	}
	return Record{}, false
}
