package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

func FormatEventLine(event Event) string {
	ts := event.Time.Format("15:04:05")
	level := strings.ToUpper(event.Level.String())
	fields := ""
	if len(event.Fields) > 0 {
		keys := orderedFieldKeys(event.Fields)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+"="+formatFieldValue(event.Fields[key]))
		}
		fields = " " + strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s [%s] %s%s\n", ts, level, event.Message, fields)
}

func formatFieldValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case error:
		return quoteIfNeeded(v.Error())
	case string:
		return quoteIfNeeded(v)
	case time.Duration:
		return v.String()
	case []int:
		parts := make([]string, 0, len(v))
		for _, n := range v {
			parts = append(parts, strconv.Itoa(n))
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	default:
		return fmt.Sprintf("%v", value)
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// orderedFieldKeys sorts keys alphabetically but keeps "error" last so the
// failure reads at the end of the line.
func orderedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	hasError := false
	for key := range fields {
		if key == "error" {
			hasError = true
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if hasError {
		keys = append(keys, "error")
	}
	return keys
}
