package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
)

// Columns applies JSONPath extract rules to one raw report object and
// returns the extra column values keyed by column name.
//
// Policy:
// - A rule that fails (bad expression, missing path, empty value) yields an
//   empty string for that column; other rules still run. A missing value in
//   one day's payload must not fail the whole dataset.
// - Keys are processed in sorted order so behavior is deterministic.
func Columns(raw map[string]any, rules domain.ExtractRules) map[string]string {
	if len(rules) == 0 {
		return map[string]string{}
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]string, len(names))
	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		if expr == "" || raw == nil {
			out[name] = ""
			continue
		}

		val, err := jsonpath.Get(expr, any(raw))
		if err != nil || isEmptyValue(val) {
			out[name] = ""
			continue
		}

		s, err := toString(val)
		if err != nil {
			out[name] = ""
			continue
		}
		out[name] = s
	}

	return out
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// jsonpath commonly returns a slice with a single element
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
