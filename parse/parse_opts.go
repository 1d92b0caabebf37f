package parse

type parseOpts struct {
	comments  bool
	keepSpace bool
}

type ParseOption func(*parseOpts)

func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// ParseKeepSpace keeps whitespace-only character data as text nodes instead
// of dropping it.
func ParseKeepSpace(v bool) ParseOption {
	return func(o *parseOpts) { o.keepSpace = v }
}
