package attackcsv

import "iter"

// Sheet is one group ready for output: its type, the synthesized header and
// the records to project.
type Sheet struct {
	Type    string
	Header  Header
	Records []Record
	Options Options
}

// NewSheet builds the header for g under opts.
func NewSheet(g Group, opts Options) Sheet {
	return Sheet{
		Type:    g.Type,
		Header:  BuildHeader(g.Records, opts.DerivedID),
		Records: g.Records,
		Options: opts,
	}
}

// Len returns the number of rows.
func (s Sheet) Len() int { return len(s.Records) }

// Rows projects records lazily, in group order.
func (s Sheet) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range s.Records {
			if !yield(Project(s.Header, r, s.Options)) {
				return
			}
		}
	}
}

// Stats counts what [Convert] did with a bundle's objects.
// Grouped + Dropped always equals Objects.
type Stats struct {
	Objects int
	Grouped int
	Dropped int
	Types   int
}

// Convert validates b and splits it into one sheet per object type, in
// first-seen type order. Nothing is grouped when validation fails.
func Convert(b Bundle, opts Options) ([]Sheet, Stats, error) {
	if err := b.Validate(); err != nil {
		return nil, Stats{}, err
	}
	groups := GroupByType(b.Objects)
	sheets := make([]Sheet, len(groups))
	stats := Stats{Objects: len(b.Objects), Types: len(groups)}
	for i, g := range groups {
		sheets[i] = NewSheet(g, opts)
		stats.Grouped += len(g.Records)
	}
	stats.Dropped = stats.Objects - stats.Grouped
	return sheets, stats, nil
}
