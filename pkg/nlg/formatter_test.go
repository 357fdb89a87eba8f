package nlg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plantops/tripchat-engine/pkg/adapters/datasource"
)

func TestFormatEmptyResult(t *testing.T) {
	result := datasource.QueryResult{Columns: []string{"vehicleNumber", "status"}}
	assert.Equal(t, NoDataResponse, Format(result, "show trips"))
}

func TestFormatCountResult(t *testing.T) {
	result := datasource.QueryResult{
		Columns: []string{"count"},
		Rows:    [][]any{{int64(5)}},
	}
	assert.Equal(t, "There are 5 records matching your query.", Format(result, "how many trips"))

	result.Columns = []string{"COUNT(DISTINCT vehicleNumber)"}
	assert.Equal(t, "There are 5 records matching your query.", Format(result, "how many vehicles"))
}

func TestFormatSingleCell(t *testing.T) {
	tests := []struct {
		name string
		col  string
		val  any
		want string
	}{
		{"string", "vehicleNumber", "MH12AB1234", "The Vehicle number is MH12AB1234."},
		{"status mapped", "status", "A", "The Status is Active."},
		{"status completed", "status", "C", "The Status is Completed."},
		{"boolean true", "isToleranceFailed", true, "Yes, the Tolerance failed has failed."},
		{"boolean false", "isToleranceFailed", int64(0), "No, the Tolerance failed has not failed."},
		{"boolean null", "isToleranceFailed", nil, "The Tolerance failed status is not recorded."},
		{"null", "driverId", nil, "The Driver ID is not recorded."},
		{"float weight", "weight", 12345.5, "The Weight is 12345.50 kg."},
		{"tare weight", "tw", 9100.0, "The Tare weight is 9100.00 kg."},
		{
			"datetime", "gateIn",
			time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC),
			"The Gate-in time is March 7, 2025, 2:30 PM.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := datasource.QueryResult{Columns: []string{tt.col}, Rows: [][]any{{tt.val}}}
			assert.Equal(t, tt.want, Format(result, ""))
		})
	}
}

func TestFormatTurnaroundAnomaly(t *testing.T) {
	result := datasource.QueryResult{Columns: []string{"TAT"}, Rows: [][]any{{int64(-42)}}}
	got := Format(result, "tat between gateIn and gateOut")

	assert.Contains(t, got, "42 minutes")
	assert.Contains(t, got, "negative")
	assert.NotContains(t, got, "-42")
}

func TestFormatSingleColumnList(t *testing.T) {
	result := datasource.QueryResult{
		Columns: []string{"vehicleNumber"},
		Rows: [][]any{
			{"MH12AB1234"},
			{"DL01CD5678"},
			{nil},
		},
	}

	got := Format(result, "show all vehicles")
	assert.Equal(t, "Here are the vehicle numbers:\n1. MH12AB1234\n2. DL01CD5678\n3. Not recorded", got)
}

func TestFormatMultiColumnBlocks(t *testing.T) {
	result := datasource.QueryResult{
		Columns: []string{"vehicleNumber", "status"},
		Rows: [][]any{
			{"MH12AB1234", "A"},
			{"DL01CD5678", "C"},
		},
	}

	got := Format(result, "show vehicles with status")
	assert.Contains(t, got, "Here are the details:")
	assert.Contains(t, got, "**1.**\n- The Vehicle number is MH12AB1234.\n- The Status is Active.")
	assert.Contains(t, got, "**2.**\n- The Vehicle number is DL01CD5678.\n- The Status is Completed.")
}

func TestFormatDedupesIdenticalRows(t *testing.T) {
	result := datasource.QueryResult{
		Columns: []string{"transporter_name"},
		Rows: [][]any{
			{"ACME Logistics"},
			{"ACME Logistics"},
			{"Northern Freight"},
		},
	}

	got := Format(result, "list transporters")
	assert.Equal(t, "Here are the transporter names:\n1. ACME Logistics\n2. Northern Freight", got)
}

func TestDedupeRowsKeepsFirstOccurrence(t *testing.T) {
	rows := DedupeRows([][]any{
		{"a", int64(1)},
		{"b", int64(2)},
		{"a", int64(1)},
	})
	assert.Equal(t, [][]any{{"a", int64(1)}, {"b", int64(2)}}, rows)
}

func TestDedupeRowsKeepsDistinctRowsWithCollidingConcatenation(t *testing.T) {
	rows := DedupeRows([][]any{
		{"ab", "c"},
		{"a", "bc"},
		{"MH12AB1234", "A"},
		{"MH12AB1", "234A"},
	})
	assert.Len(t, rows, 4)
}

func TestPrimaryColumnPriority(t *testing.T) {
	assert.Equal(t, "vehicleNumber", primaryColumn([]string{"tripId", "vehicleNumber"}, ""))
	assert.Equal(t, "tripId", primaryColumn([]string{"tripId", "plant_name"}, ""))
	assert.Equal(t, "vehicleNumber", primaryColumn([]string{"x"}, "show trucks"))
	assert.Equal(t, "x", primaryColumn([]string{"x"}, "show stuff"))
}
