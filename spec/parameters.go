package spec

// MergeParameters builds the effective parameter list of an operation. Path
// item parameters are inserted first and operation parameters second, keyed by
// Key, so an operation parameter with the same name and location replaces the
// path-level one in place. The result follows first-seen key order.
//
// Either argument may be nil.
func MergeParameters(item *PathItem, operation *Operation) []*Parameter {
	var index = make(map[string]int)
	var merged []*Parameter

	add := func(params []*Parameter) {
		for _, param := range params {
			if param == nil {
				continue
			}

			key := param.Key()
			if i, ok := index[key]; ok {
				merged[i] = param
				continue
			}

			index[key] = len(merged)
			merged = append(merged, param)
		}
	}

	if item != nil {
		add(item.Parameters)
	}
	if operation != nil {
		add(operation.Parameters)
	}

	return merged
}
