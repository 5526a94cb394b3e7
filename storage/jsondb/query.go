package jsondb

// Match reports whether rec satisfies every field of filter (a conjunction:
// all named fields must match). Per field, two rules apply in order:
//
//  1. record value is an array, filter value is not: the array must contain
//     the filter value (set-membership, e.g. a student id against
//     enrolledStudents);
//  2. otherwise: strict equality, type and value, no coercion. Numbers
//     decoded from JSON are float64, so numeric filter values must be too.
//
// An empty or nil filter matches every record. Comparison operators, OR,
// nested paths and array-to-array containment are unsupported; see FilterByID
// for the in-set composition callers use instead.
func Match(rec Record, filter Filter) bool {
	for field, want := range filter {
		if !matchField(rec[field], want) {
			return false
		}
	}
	return true
}

func matchField(val, want interface{}) bool {
	if arr, ok := val.([]interface{}); ok {
		if !isComposite(want) {
			for _, v := range arr {
				if v == want {
					return true
				}
			}
			return false
		}
	}
	// composites never compare equal (mirrors reference equality on objects)
	if isComposite(val) || isComposite(want) {
		return false
	}
	return val == want
}

func isComposite(v interface{}) bool {
	switch v.(type) {
	case []interface{}, map[string]interface{}:
		return true
	}
	return false
}

// apply keeps the records matching filter, preserving collection order.
func apply(recs []Record, filter Filter) []Record {
	if len(filter) == 0 {
		return recs
	}
	matched := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if Match(rec, filter) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// FilterByID keeps the records whose string field value is one of ids,
// preserving order. This is the documented composition primitive for
// "field is in a caller-supplied set" queries, which Match cannot express:
// callers pair it with an unfiltered fetch and knowingly pay a full
// collection scan.
func FilterByID(recs []Record, field string, ids []string) []Record {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	matched := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if id, ok := rec[field].(string); ok {
			if _, ok := keep[id]; ok {
				matched = append(matched, rec)
			}
		}
	}
	return matched
}
