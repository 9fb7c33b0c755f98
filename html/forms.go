// Package html extracts form descriptions from HTML documents by walking the
// golang.org/x/net/html node tree.
package html

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/netkit"
	"golang.org/x/net/html"
)

// Form field element names.
const (
	elementInput    = "input"
	elementSelect   = "select"
	elementTextarea = "textarea"
)

var _ netkit.FormExtractor = (*FormExtractor)(nil)

// FormExtractor implements netkit.FormExtractor.
type FormExtractor struct{}

// NewFormExtractor creates a new FormExtractor.
func NewFormExtractor() *FormExtractor {
	return &FormExtractor{}
}

// ExtractForms returns the forms of body in document order.
func (e *FormExtractor) ExtractForms(body []byte, pageURL string) ([]*netkit.Form, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "failed to parse HTML: %v", err)
	}

	var forms []*netkit.Form
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "form" {
			form := &netkit.Form{
				Action: resolveAction(base, getAttr(n, "action")),
				Method: strings.ToUpper(strings.TrimSpace(getAttr(n, "method"))),
			}
			if form.Method == "" {
				form.Method = "GET"
			}
			collectFields(n, form)
			forms = append(forms, form)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return forms, nil
}

// collectFields appends the named input, select and textarea descendants of n.
func collectFields(n *html.Node, form *netkit.Form) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case elementInput, elementSelect, elementTextarea:
			field := netkit.FormField{
				Name:  getAttr(n, "name"),
				Type:  getAttr(n, "type"),
				Value: getAttr(n, "value"),
			}
			if field.Type == "" {
				switch n.Data {
				case elementInput:
					field.Type = "text"
				default:
					field.Type = n.Data
				}
			}
			if field.Name != "" {
				form.Fields = append(form.Fields, field)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFields(c, form)
	}
}

// resolveAction resolves a form action against the page URL. An empty
// action submits to the page itself.
func resolveAction(base *url.URL, action string) string {
	action = strings.TrimSpace(action)
	if action == "" {
		return base.String()
	}
	ref, err := url.Parse(action)
	if err != nil {
		return action
	}
	return base.ResolveReference(ref).String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
