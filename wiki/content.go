package wiki

// ArticleContent is one rendered article page as handed from a
// renderer to the extractor. It is produced fresh on every fetch and
// never mutated after construction.
type ArticleContent struct {
	// URL is the page reference the content was rendered for. Relative
	// link targets resolve against it.
	URL string

	// Title is the rendered document title, best-effort.
	Title string

	// RawHTML is the full rendered page markup. Kept for reporting
	// (readability summaries of terminal pages).
	RawHTML string

	// LeadHTML is the lead-section fragment: the paragraph and list
	// blocks of the content root, in document order, up to the first
	// section heading. This is the only part the extractor scans.
	LeadHTML string
}
