package netkit

// Page represents the response to a single HTTP GET.
// Pages are returned for every HTTP status, including 4xx and 5xx,
// so callers can still inspect headers and body of error responses.
type Page struct {
	URL        string
	StatusCode int
	Header     map[string]string
	Body       []byte
}

// OK reports whether the response carried a 2xx status code.
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}
