package encode

type EncodeOption func(*EncState)

// Indent sets the per-level indentation string.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// Declaration emits an XML declaration before the root element.
func Declaration(v bool) EncodeOption {
	return func(es *EncState) { es.decl = v }
}

// Namespaces configures the URI-to-prefix mapping used when rendering
// qualified names.
func Namespaces(m map[string]string) EncodeOption {
	return func(es *EncState) { es.namespaces = m }
}
