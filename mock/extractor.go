package mock

import "github.com/fwojciec/netkit"

var _ netkit.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of netkit.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body []byte, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(body []byte, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(body, pageURL)
}

var _ netkit.FormExtractor = (*FormExtractor)(nil)

// FormExtractor is a mock implementation of netkit.FormExtractor.
type FormExtractor struct {
	ExtractFormsFn func(body []byte, pageURL string) ([]*netkit.Form, error)
}

func (e *FormExtractor) ExtractForms(body []byte, pageURL string) ([]*netkit.Form, error) {
	return e.ExtractFormsFn(body, pageURL)
}
