package llm

import (
	"regexp"
	"strings"
)

var sqlFencePattern = regexp.MustCompile("(?s)```sql\\s*(.*?)\\s*```")

// ExtractSQL pulls the SQL statement out of a completion. Models usually
// answer with a fenced code block; when no fence is present the trimmed
// completion itself is returned and left to the validation gate.
func ExtractSQL(completion string) string {
	if m := sqlFencePattern.FindStringSubmatch(completion); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(completion)
}
