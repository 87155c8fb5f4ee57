package attackcsv

// Group is the ordered set of records sharing one type.
type Group struct {
	Type    string
	Records []Record
}

// GroupByType partitions records by their "type" field. Groups are returned
// in the order their type was first seen, and records keep input order
// within a group. Records without a string type are skipped.
func GroupByType(records []Record) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range records {
		t, ok := r.Type()
		if !ok {
			continue
		}
		i, seen := index[t]
		if !seen {
			i = len(groups)
			index[t] = i
			groups = append(groups, Group{Type: t})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
