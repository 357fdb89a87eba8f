// Package nlg turns query results into user-facing text: a deterministic
// formatter, an optional LLM narrative layer, canned small-talk replies,
// and follow-up suggestions.
package nlg

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/inflection"

	"github.com/plantops/tripchat-engine/pkg/adapters/datasource"
	"github.com/plantops/tripchat-engine/pkg/schema"
)

// NoDataResponse is returned for any empty result set.
const NoDataResponse = "I couldn't find any data matching your query."

// Format renders a query result deterministically. The utterance is only
// used for primary-entity phrasing, never for data.
func Format(result datasource.QueryResult, utterance string) string {
	rows := DedupeRows(result.Rows)
	if len(rows) == 0 {
		return NoDataResponse
	}
	cols := result.Columns

	if len(rows) == 1 && len(cols) == 1 {
		if strings.Contains(strings.ToLower(cols[0]), "count") {
			return fmt.Sprintf("There are %s records matching your query.", plainValue(rows[0][0]))
		}
		return FormatCell(cols[0], rows[0][0])
	}

	var b strings.Builder
	if len(cols) == 1 {
		label := schema.Label(primaryColumn(cols, utterance))
		fmt.Fprintf(&b, "Here are the %s:\n", inflection.Plural(strings.ToLower(label)))
		for i, row := range rows {
			v := "Not recorded"
			if row[0] != nil {
				v = plainValue(row[0])
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, v)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("Here are the details:\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "**%d.**\n", i+1)
		for j, col := range cols {
			if j >= len(row) {
				break
			}
			fmt.Fprintf(&b, "- %s\n", FormatCell(col, row[j]))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCell renders a single value as a full sentence according to the
// column's semantic type.
func FormatCell(col string, value any) string {
	label := schema.Label(col)
	lowerCol := strings.ToLower(col)

	// TIMESTAMPDIFF projections come back as a TAT column.
	if lowerCol == "tat" || strings.HasPrefix(lowerCol, "tat_") {
		return formatTurnaround(value)
	}

	if value == nil {
		if schema.TypeOf(col) == schema.TypeBoolean {
			return fmt.Sprintf("The %s status is not recorded.", label)
		}
		return fmt.Sprintf("The %s is not recorded.", label)
	}

	switch schema.TypeOf(col) {
	case schema.TypeBoolean:
		if isTruthy(value) {
			return fmt.Sprintf("Yes, the %s has failed.", label)
		}
		return fmt.Sprintf("No, the %s has not failed.", label)
	case schema.TypeDatetime:
		if ts, ok := value.(time.Time); ok {
			return fmt.Sprintf("The %s is %s.", label, ts.Format("January 2, 2006, 3:04 PM"))
		}
		return fmt.Sprintf("The %s is %s.", label, plainValue(value))
	case schema.TypeFloat:
		if f, ok := asFloat(value); ok {
			if strings.Contains(lowerCol, "weight") || lowerCol == "tw" || lowerCol == "gw" {
				return fmt.Sprintf("The %s is %.2f kg.", label, f)
			}
			return fmt.Sprintf("The %s is %.2f.", label, f)
		}
	}

	if lowerCol == "status" {
		if mapped, ok := schema.StatusLabels[plainValue(value)]; ok {
			return fmt.Sprintf("The %s is %s.", label, mapped)
		}
	}

	return fmt.Sprintf("The %s is %s.", label, plainValue(value))
}

// formatTurnaround handles TAT values, flagging the negative readings
// that show up when stage timestamps were recorded out of order.
func formatTurnaround(value any) string {
	f, ok := asFloat(value)
	if !ok {
		return fmt.Sprintf("The turnaround time is %s minutes.", plainValue(value))
	}
	if f < 0 {
		return fmt.Sprintf("The turnaround time is %.0f minutes. (Note: The original value was negative, which might indicate an issue in the data.)", -f)
	}
	return fmt.Sprintf("The turnaround time is %.0f minutes.", f)
}

// DedupeRows collapses rows that are identical across all columns,
// keeping the first occurrence.
func DedupeRows(rows [][]any) [][]any {
	seen := make(map[string]bool, len(rows))
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// rowKey encodes every cell quoted and delimited so that two rows share
// a key only when they are cell-for-cell identical.
func rowKey(row []any) string {
	var b strings.Builder
	for _, cell := range row {
		fmt.Fprintf(&b, "%q|", fmt.Sprint(cell))
	}
	return b.String()
}

// primaryColumn picks the column that should drive phrasing: known key
// columns first, then keyword hints from the utterance, then the first
// column.
func primaryColumn(cols []string, utterance string) string {
	for _, want := range []string{"vehicleNumber", "tripId", "plant_name"} {
		for _, c := range cols {
			if c == want {
				return c
			}
		}
	}
	q := strings.ToLower(utterance)
	switch {
	case strings.Contains(q, "vehicle") || strings.Contains(q, "truck") || strings.Contains(q, "lorry"):
		return "vehicleNumber"
	case strings.Contains(q, "trip"):
		return "tripId"
	case strings.Contains(q, "plant"):
		return "plant_name"
	}
	return cols[0]
}

func isTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	}
	return false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func plainValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "not recorded"
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
