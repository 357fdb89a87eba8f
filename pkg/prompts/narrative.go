package prompts

import (
	"fmt"
	"strings"
)

// BuildNarrative compiles the request used to summarize query results in
// natural language. data is a pre-rendered compact representation of the
// rows.
func BuildNarrative(utterance string, columns []string, data string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User asked: '%s'.\n", utterance)
	fmt.Fprintf(&b, "The retrieved data has the following columns: %s.\n", strings.Join(columns, ", "))
	fmt.Fprintf(&b, "The data is: %s.\n", data)
	b.WriteString("Please respond in a concise and natural language format, summarizing the key information for the user. Do not invent values that are not present in the data.")
	return b.String()
}
