package attackcsv

import "slices"

// Header is an ordered list of unique column names.
type Header []string

// Index returns the position of a column, or -1.
func (h Header) Index(name string) int {
	return slices.Index(h, name)
}

// Has reports whether the header contains a column.
func (h Header) Has(name string) bool {
	return h.Index(name) >= 0
}

// BuildHeader returns the column set for a group: type, id, created and
// modified, then mitre_attack_id when derivedID is set, then every other
// field name in first-seen order.
func BuildHeader(records []Record, derivedID bool) Header {
	h := Header{"type", "id", "created", "modified"}
	if derivedID {
		h = append(h, AttackIDColumn)
	}
	seen := make(map[string]struct{}, len(h))
	for _, name := range h {
		seen[name] = struct{}{}
	}
	for _, r := range records {
		for _, name := range r.keys {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			h = append(h, name)
		}
	}
	return h
}
