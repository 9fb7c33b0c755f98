package netkit

// LinkExtractor finds the links of an HTML page.
type LinkExtractor interface {
	// ExtractLinks parses body and returns the absolute URLs referenced by
	// anchor elements, resolved against pageURL, with any fragment removed.
	// The result contains no duplicates; its order carries no meaning.
	ExtractLinks(body []byte, pageURL string) ([]string, error)
}

// Form describes an HTML form element.
type Form struct {
	// Action is the absolute URL the form submits to.
	Action string

	// Method is the upper-cased HTTP method, GET when unspecified.
	Method string

	Fields []FormField
}

// FormField describes an input, select or textarea element of a form.
type FormField struct {
	Name  string
	Type  string
	Value string
}

// FormExtractor finds the forms of an HTML page.
type FormExtractor interface {
	// ExtractForms parses body and returns its forms in document order.
	// Relative form actions are resolved against pageURL.
	ExtractForms(body []byte, pageURL string) ([]*Form, error)
}
