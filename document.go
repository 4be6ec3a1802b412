package quill

// Document is fetched page text used as prompt context.
type Document struct {
	Source  string // URL the content was fetched from
	Title   string
	Content string
}
