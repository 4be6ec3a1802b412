package quill

// Usage tracks token consumption for a single call. Providers that do not
// report usage leave it zero.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
