// Package prompts composes the generation requests sent to the
// completion service. Composition only; nothing here parses or trusts
// what the model returns.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plantops/tripchat-engine/pkg/schema"
	"github.com/plantops/tripchat-engine/pkg/session"
)

// Request carries everything the SQL-generation prompt needs for one
// turn. Utterance is the normalized form (dates already rewritten,
// pronouns already resolved).
type Request struct {
	Utterance string
	Entities  map[string]string
	History   []session.Turn
	PlantCode string
	Boolean   bool
}

// EntityContext renders the known entities as declarative sentences,
// one per line, in sorted key order so the prompt is stable across runs.
func EntityContext(entities map[string]string) string {
	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "The %s is %s.\n", schema.Label(k), entities[k])
	}
	return b.String()
}

// HistoryContext renders prior turns as compact context lines.
func HistoryContext(turns []session.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "User: %s | Bot: %s\n", t.User, t.Bot)
	}
	return b.String()
}

// TATFragment builds a turnaround-time expression when the utterance
// names exactly two stage timestamp columns. Column mentions are matched
// verbatim, so only canonical camelCase names count.
func TATFragment(utterance string) string {
	var found []string
	for _, col := range schema.StageTimestamps {
		if strings.Contains(utterance, col) {
			found = append(found, col)
		}
	}
	if len(found) != 2 {
		return ""
	}
	return fmt.Sprintf(
		"TIMESTAMPDIFF(MINUTE, LEAST(CAST(t.%[1]s AS DATETIME), CAST(t.%[2]s AS DATETIME)), GREATEST(CAST(t.%[1]s AS DATETIME), CAST(t.%[2]s AS DATETIME))) AS TAT",
		found[0], found[1])
}

const booleanInstructions = `If the user query is a yes/no (boolean) question (e.g., starting with "Is", "Are", "Does", "Has", "Whether"),
you MUST generate a SQL query in the format:
SELECT CASE
    WHEN EXISTS (
        SELECT 1
        FROM ` + schema.Table + ` t
        WHERE -- conditions for the boolean check only
    )
    THEN 'yes'
    ELSE 'no'
END AS result;
Only include conditions directly related to the user's boolean question. Do NOT include any columns or conditions that are not explicitly asked for by the user. Prioritize identifying specific entities (like vehicle numbers, material types) and generating exact match conditions.
`

// BuildSQLGeneration compiles the full generation request. Section order
// is fixed: schema, entity context, aliases, history, user query, rules.
// The boolean instruction block, when applicable, goes first.
func BuildSQLGeneration(req Request) string {
	var b strings.Builder

	if req.Boolean {
		b.WriteString(booleanInstructions)
		b.WriteString("\n")
	}

	b.WriteString("You are an SQL expert using MySQL. Based on the following database schema, generate a safe SQL query:\n\n")
	b.WriteString(schema.Description)
	b.WriteString("\n**Known Entity Context:**\nThe following known entity values are available:\n")
	b.WriteString(EntityContext(req.Entities))
	b.WriteString("\n**Entity Aliases:**\n")
	b.WriteString(schema.AliasContext())
	b.WriteString("\n**Session History:**\n")
	b.WriteString(HistoryContext(req.History))
	b.WriteString("\n**User Query:**\n")
	b.WriteString(req.Utterance)
	b.WriteString("\n\n**SQL Generation Rules:**\n")
	writeRules(&b, req)

	return b.String()
}

func writeRules(b *strings.Builder, req Request) {
	fmt.Fprintf(b, `Mandatory WHERE clause rules:
- Always include AND plantCode = '%[1]s' in the WHERE clause, even if the user does not mention a plant.
- If the user explicitly specifies a different plant code, ignore it and enforce %[1]s instead.
- If the generated SQL already contains plantCode = 'X' where X is not %[1]s, override it with %[1]s.
- Always use plantCode for plant code filters. Only use plant_name if the user explicitly asks for the plant by name (e.g., 'Sindri', 'Maratha').

Mandatory DISTINCT rules:
- Always use SELECT DISTINCT when retrieving values like vehicle numbers, transporter names, material codes.
- If the user asks "how many vehicles", always use SELECT COUNT(DISTINCT vehicleNumber). Never generate COUNT(DISTINCT COUNT(...)).
- Only use DISTINCT inside COUNT() when directly counting unique values.
- When a query implies a breakdown (e.g., "per plant", "per material"), include GROUP BY.

Query type handling:
- If the user query starts with "how many", "number of", or "count of", generate a COUNT query.
- If the query references a specific vehicle number, include vehicleNumber in the SELECT clause along with other requested columns.

Entity mapping and contextual interpretation:
- movementCode: OB means 'Outbound', IB means 'Inbound'.
- status: A means 'Active', C means 'Completed'.
- Always interpret user terms accordingly.

Technical SQL formatting rules:
- Always use the %[2]s table with its full database prefix.
- Use exact column names from the schema. Use vehicleNumber, never vehicle.
- If the user names specific columns, SELECT only those columns. Never add '*' alongside named columns.
- Use COALESCE(..., 0) inside SUM() functions.
- Ensure columns are either aggregated or included in GROUP BY.

Turnaround time (TAT) queries:
- Use TIMESTAMPDIFF(MINUTE, col1, col2) when a query references two stage timestamps.
- Always return time differences in minutes, never seconds or hours.
`, req.PlantCode, schema.Table)

	if tat := TATFragment(req.Utterance); tat != "" {
		fmt.Fprintf(b, "- Use the expression %s when computing the turnaround time.\n", tat)
	}

	b.WriteString(`
Disambiguation and reference resolution:
- Resolve "it", "its", or "that" using the entity context.
- If "plant" is used, treat the value as plantCode when it looks like a code (e.g., N205) and as plant_name when it looks like a name (e.g., Sindri).

Output formatting:
- Do NOT include trailing colons at the end of the SQL query.
- Return the SQL inside a fenced code block.
`)
}
