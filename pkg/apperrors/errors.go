// Package apperrors defines the failure taxonomy of the chat pipeline.
//
// Every pipeline stage returns one of these sentinels (usually wrapped with
// fmt.Errorf and %w). UserMessage is the single place that converts a
// failure kind into user-facing text, so the mapping stays centralized and
// testable. Internal rejection reasons are logged by the caller but never
// shown to the end user.
package apperrors

import "errors"

var (
	// ErrGibberishInput indicates the utterance failed the sense-check.
	ErrGibberishInput = errors.New("utterance failed sense check")

	// ErrMissingTenantScope indicates no authorized plant code is available
	// for the session. Generation fails closed before any LLM call.
	ErrMissingTenantScope = errors.New("no authorized plant code for session")

	// ErrGenerationFailure indicates the completion service errored or
	// timed out. Never substituted with a default or guessed query.
	ErrGenerationFailure = errors.New("sql generation failed")

	// ErrInvalidGeneratedSQL indicates the generated query failed the
	// structural or keyword safety gate.
	ErrInvalidGeneratedSQL = errors.New("generated sql rejected")

	// ErrExecutionFailure indicates the database rejected the query.
	ErrExecutionFailure = errors.New("query execution failed")
)

// UserMessage maps a pipeline failure to the fixed text shown to the user.
// Gate rejection reasons and SQL internals are deliberately not leaked.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrGibberishInput):
		return "Sorry, I didn't understand your request. Could you please clarify?"
	case errors.Is(err, ErrMissingTenantScope):
		return "Error: Plant code must be provided."
	case errors.Is(err, ErrGenerationFailure):
		return "Sorry, I'm unable to process your request due to an API issue. Please try again later."
	case errors.Is(err, ErrInvalidGeneratedSQL):
		return "Sorry, I could not understand your query. Could you try rephrasing it?"
	case errors.Is(err, ErrExecutionFailure):
		return "Sorry, I encountered an error while querying the database."
	default:
		return "Sorry, I cannot process your query at the moment. Please try again later."
	}
}
