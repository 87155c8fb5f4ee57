package attackcsv

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a single STIX object. Field order follows the order in which
// keys appeared in the source document.
//
// Scalar values are held as string, json.Number, bool or nil. Nested
// objects and arrays are held as compact json.RawMessage so their original
// key order survives stringification.
type Record struct {
	keys   []string
	fields map[string]any
}

// Keys returns the field names in first-seen order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Get returns the raw value of a field.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Text returns the field stringified for tabular output. Missing fields and
// JSON nulls yield "".
func (r Record) Text(name string) string {
	v, ok := r.fields[name]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Set assigns a field. A new name is appended to the key order; an
// existing name keeps its position.
func (r *Record) Set(name string, v any) {
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = v
}

// Type returns the record's type discriminator. Records whose type is
// missing or not a string report false.
func (r Record) Type() (string, bool) {
	s, ok := r.fields["type"].(string)
	return s, ok
}

// AttackID returns the external_id of the first external reference whose
// source_name is [AttackSource].
func (r Record) AttackID() (string, bool) {
	v, ok := r.fields["external_references"]
	if !ok || v == nil {
		return "", false
	}
	raw, ok := v.(json.RawMessage)
	if !ok {
		b, err := marshalNoEscape(v)
		if err != nil {
			return "", false
		}
		raw = b
	}
	var refs []json.RawMessage
	if err := json.Unmarshal(raw, &refs); err != nil {
		return "", false
	}
	for _, ref := range refs {
		var entry struct {
			SourceName any `json:"source_name"`
			ExternalID any `json:"external_id"`
		}
		if err := json.Unmarshal(ref, &entry); err != nil {
			continue
		}
		if name, _ := entry.SourceName.(string); name != AttackSource {
			continue
		}
		if entry.ExternalID == nil {
			return "", true
		}
		return stringify(entry.ExternalID), true
	}
	return "", false
}

// UnmarshalJSON decodes a JSON object while keeping its key order.
// Duplicate keys keep their first position and the last value.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: object must be a JSON object, got %v", ErrInvalidBundle, tok)
	}
	*r = Record{fields: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected object key %v", ErrInvalidBundle, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		r.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the record with its original key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalNoEscape(r.fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return json.RawMessage(buf.Bytes()), nil
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case 't', 'f':
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case 'n':
		return nil, nil
	default:
		return json.Number(raw), nil
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case json.RawMessage:
		return string(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return t.String()
	default:
		b, err := marshalNoEscape(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// marshalNoEscape is json.Marshal without HTML escaping, so descriptions
// containing <code> survive intact.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
