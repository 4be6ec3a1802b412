// Package gemini implements [quill.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between quill's
// message types and the Gemini API types. Each Generate is a single
// non-streaming GenerateContent call.
package gemini

const defaultModel = "gemini-1.5-flash"
