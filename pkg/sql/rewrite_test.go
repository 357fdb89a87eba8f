package sql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/tripchat-engine/pkg/apperrors"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trailing semicolon and whitespace",
			in:   "  SELECT tripId\nFROM t ;  ",
			want: "SELECT tripId FROM t",
		},
		{
			name: "misplaced DISTINCT",
			in:   "SELECT vehicleNumber, DISTINCT tripId FROM t",
			want: "SELECT DISTINCT vehicleNumber, tripId FROM t",
		},
		{
			name: "stray WHERE AND",
			in:   "SELECT * FROM t WHERE AND status = 'A'",
			want: "SELECT * FROM t WHERE status = 'A'",
		},
		{
			name: "already clean",
			in:   "SELECT DISTINCT vehicleNumber FROM t",
			want: "SELECT DISTINCT vehicleNumber FROM t",
		},
		{
			name: "whitespace inside literals survives",
			in:   "SELECT tripId  FROM t\nWHERE plant_name = 'ACC  Sindri'",
			want: "SELECT tripId FROM t WHERE plant_name = 'ACC  Sindri'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repair(tt.in))
		})
	}
}

func TestEnforceTenant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "overwrites foreign literal",
			in:   "SELECT tripId FROM t WHERE plantCode = 'NE03' AND status = 'A'",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205' AND status = 'A'",
		},
		{
			name: "overwrites snake_case column literal",
			in:   "SELECT tripId FROM t WHERE plant_code = 'NE03'",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205'",
		},
		{
			name: "injects into existing WHERE",
			in:   "SELECT tripId FROM t WHERE status = 'A'",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205' AND status = 'A'",
		},
		{
			name: "injects before trailing LIMIT",
			in:   "SELECT tripId FROM t LIMIT 10",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205' LIMIT 10",
		},
		{
			name: "appends when no WHERE or LIMIT",
			in:   "SELECT DISTINCT vehicleNumber FROM t",
			want: "SELECT DISTINCT vehicleNumber FROM t WHERE plantCode = 'N205'",
		},
		{
			name: "collapses duplicate plant predicates",
			in:   "SELECT tripId FROM t WHERE plantCode = 'NE03' OR plantCode = 'NT45'",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205'",
		},
		{
			name: "re-injects a trailing plant predicate at the WHERE",
			in:   "SELECT tripId FROM t WHERE status = 'A' AND plantCode = 'NE03'",
			want: "SELECT tripId FROM t WHERE plantCode = 'N205' AND status = 'A'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnforceTenant(tt.in, "N205")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforceTenantExactlyOnePredicate(t *testing.T) {
	candidates := []string{
		"SELECT tripId FROM t WHERE plantCode = 'NE03'",
		"SELECT tripId FROM t WHERE status = 'A'",
		"SELECT tripId FROM t",
		"SELECT tripId FROM t LIMIT 5",
		"SELECT tripId FROM t WHERE plantCode = 'NE03' OR plantCode = 'NT45'",
		"SELECT tripId FROM t WHERE plant_code = 'NE03' AND plantCode = 'NT45'",
		"SELECT tripId FROM t WHERE status = 'A' AND plantCode = 'NE03'",
	}
	for _, plantCode := range []string{"N205", "NE03", "NT45"} {
		for _, c := range candidates {
			got, err := EnforceTenant(c, plantCode)
			require.NoError(t, err)

			matches := plantLiteralPattern.FindAllString(got, -1)
			require.Len(t, matches, 1, "query %q plant %q -> %q", c, plantCode, got)
			assert.Equal(t, fmt.Sprintf("plantCode = '%s'", plantCode), matches[0])
		}
	}
}

func TestEnforceTenantFailsClosedWithoutPlantCode(t *testing.T) {
	_, err := EnforceTenant("SELECT tripId FROM t", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingTenantScope)
}

func TestEnforceTenantEscapesQuotes(t *testing.T) {
	got, err := EnforceTenant("SELECT tripId FROM t", "N2'05")
	require.NoError(t, err)
	assert.Contains(t, got, "plantCode = 'N2''05'")
}

func TestRewriteCount(t *testing.T) {
	got := RewriteCount("SELECT DISTINCT vehicleNumber FROM t WHERE plantCode = 'N205'")
	assert.Equal(t, "SELECT COUNT(DISTINCT vehicleNumber) FROM t WHERE plantCode = 'N205'", got)
}

func TestRewriteCountNeverNests(t *testing.T) {
	in := "SELECT COUNT(DISTINCT vehicleNumber) FROM t"
	assert.Equal(t, in, RewriteCount(in))
}

func TestRewriteCountOnlyFirstSelect(t *testing.T) {
	in := "SELECT DISTINCT transporter_name FROM t WHERE tripId IN (SELECT DISTINCT tripId FROM t2)"
	got := RewriteCount(in)
	assert.Equal(t, "SELECT COUNT(DISTINCT transporter_name) FROM t WHERE tripId IN (SELECT DISTINCT tripId FROM t2)", got)
}
