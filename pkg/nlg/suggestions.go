package nlg

import "strings"

type suggestionEntry struct {
	key       string
	followUps []string
}

// suggestionTable maps canonical questions to follow-up prompts. Keys
// are matched as substrings of the lowercased utterance, in declaration
// order, first hit wins.
var suggestionTable = []suggestionEntry{
	{
		key: "how many vehicles entered the plant today",
		followUps: []string{
			"How many vehicles exited the plant today?",
			"Show today's material dispatch details.",
			"Which transporter had the most trips today?",
		},
	},
	{
		key: "show material dispatch details of last month",
		followUps: []string{
			"Show material dispatch details for last 6 months.",
			"Which plant dispatched the most material?",
			"How much material was rejected?",
		},
	},
	{
		key: "what is the current stage of vehicle",
		followUps: []string{
			"What is the last recorded location of the vehicle?",
			"How long has the vehicle been in the current stage?",
			"Has the vehicle exited the plant?",
		},
	},
	{
		key: "total trips completed this week",
		followUps: []string{
			"Total trips completed last week?",
			"Which transporter completed the most trips?",
			"Show trips completed per day this week.",
		},
	},
}

// genericSuggestions is the fallback when nothing in the table matches.
var genericSuggestions = []string{
	"What else can I check?",
	"Do you need details for a different time period?",
	"Would you like a summary report?",
}

// Suggestions returns follow-up prompts for an utterance. The returned
// slice is a copy; callers may mutate it.
func Suggestions(utterance string) []string {
	q := strings.ToLower(utterance)
	for _, e := range suggestionTable {
		if strings.Contains(q, e.key) {
			return append([]string(nil), e.followUps...)
		}
	}
	return append([]string(nil), genericSuggestions...)
}
