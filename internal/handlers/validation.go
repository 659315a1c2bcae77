package handlers

import "strings"

const missingParamsPrefix = "Invalid or missing params: "

// param pairs a request field name with its value for validation.
// Fields are checked in slice order so the error message lists names in
// the order the request declares them.
type param struct {
	name  string
	value any
}

// missingParamsMessage returns "" when every param is present, otherwise
// a single message naming all missing params, comma-joined.
//
// A value counts as missing when it is falsy (nil, empty string, zero
// number, false) or exactly one space. Numeric zero being "missing" is
// deliberate, matching the long-standing behavior of every mutating
// route; see DESIGN.md for why it is kept.
func missingParamsMessage(params []param) string {
	var missing []string
	for _, p := range params {
		if isMissingValue(p.value) {
			missing = append(missing, p.name)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return missingParamsPrefix + strings.Join(missing, ", ")
}

func isMissingValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == " "
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}
