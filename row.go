package attackcsv

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Row is one projected record: a value for every header column.
type Row struct {
	header Header
	values []string
}

// Project fills one value per header column from r. Missing fields become
// "". With opts.DerivedID the mitre_attack_id column is taken from the
// record's external references, and the description column is passed
// through [Rewrite] using opts.Mode.
func Project(h Header, r Record, opts Options) Row {
	values := make([]string, len(h))
	for i, name := range h {
		values[i] = r.Text(name)
	}
	if opts.DerivedID {
		if i := h.Index(AttackIDColumn); i >= 0 {
			id, _ := r.AttackID()
			values[i] = id
		}
	}
	if i := h.Index(DescriptionColumn); i >= 0 {
		values[i] = Rewrite(values[i], opts.Mode)
	}
	return Row{header: h, values: values}
}

// Header returns the row's column names.
func (r Row) Header() []string { return r.header }

// Values returns the cell values in header order.
func (r Row) Values() []string { return r.values }

// Get returns the value of a column, or "" if the header lacks it.
func (r Row) Get(name string) string {
	if i := r.header.Index(name); i >= 0 {
		return r.values[i]
	}
	return ""
}

// Map returns the row keyed by column name.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for i, name := range r.header {
		m[name] = r.values[i]
	}
	return m
}

// MarshalJSON encodes the row as an object in header order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		v, err := marshalNoEscape(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the row as a mapping in header order.
func (r Row) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, name := range r.header {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[i]},
		)
	}
	return node, nil
}
