package nlg

import "strings"

// predefinedResponses answers small talk without touching the pipeline.
// Lookup is by the trimmed, lowercased utterance.
var predefinedResponses = map[string]string{
	"hi":            "Hello! How can I assist you today?",
	"hello":         "Hey there! How can I help?",
	"hey":           "Hi! How can I assist you?",
	"who are you":   "I am a chatbot designed to retrieve data from the database based on your queries.",
	"what can you do": "I can help you fetch information from the database. Try asking things like 'Show all vehicle numbers' or 'Trips in the last 2 months'.",
	"how are you":   "I'm just a bot, but I'm here and ready to assist you!",
	"help": "I can help you retrieve database queries. Here are some suggestions:\n" +
		"- 'How many vehicles entered the plant today?'\n" +
		"- 'Show me the trips in the last 6 months'\n" +
		"- 'List all transporters in the database'.",
}

// PredefinedResponse returns the canned reply for small-talk utterances.
func PredefinedResponse(utterance string) (string, bool) {
	reply, ok := predefinedResponses[strings.ToLower(strings.TrimSpace(utterance))]
	return reply, ok
}
