package validator

import "context"

// checkUnique asks the injected lookup how many stored records already hold
// the value. Parameters: table, column, [except-field], [id-column].
//
// The except field names both the column to exclude on and the input holding
// the value to exclude; it is skipped when that input is missing or nil. The
// id column is only applied when the input of the same name is non-empty.
func checkUnique(ctx context.Context, in Input) (bool, error) {
	if in.Env.Lookup == nil {
		return false, misconfigured(in.Rule, ErrMissingCollaborator, "The %s validation rule requires a uniqueness lookup.", in.Rule)
	}

	count, err := in.Env.Lookup.CountMatching(ctx, uniqueQuery(in))
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func uniqueQuery(in Input) UniqueQuery {
	q := UniqueQuery{
		Table:  in.Param(0),
		Column: in.Param(1),
		Value:  in.Value,
	}

	if except := in.Param(2); except != "" {
		if v, ok := in.Inputs[except]; ok && v != nil {
			q.ExceptColumn = except
			q.ExceptValue = v
		}
	}

	if idColumn := in.Param(3); idColumn != "" {
		if v := in.Inputs[idColumn]; !isEmptyValue(v) {
			q.IDColumn = idColumn
			q.IDValue = v
		}
	}

	return q
}

// isEmptyValue mirrors the usual "blank" notion: nil, "", "0", false and zero numbers.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == "" || val == "0"
	case bool:
		return !val
	}
	if f, ok := floatValue(v); ok {
		return f == 0
	}
	return false
}
