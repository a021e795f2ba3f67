// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	_ Document = (*HTMLDocument)(nil)
	_ Element  = (*HTMLElement)(nil)
)

// HTMLDocument is a Document backed by a parsed golang.org/x/net/html tree.
type HTMLDocument struct {
	root *html.Node
}

// HTMLElement is an Element wrapping a single element node.
type HTMLElement struct {
	node *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the document, including its doctype.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the serialized document.
func (d *HTMLDocument) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}

func (d *HTMLDocument) GetElementByID(id string) Element {
	if el := d.ElementByID(id); el != nil {
		return el
	}
	return nil
}

func (d *HTMLDocument) QuerySelector(sel string) Element {
	if el := d.Find(sel); el != nil {
		return el
	}
	return nil
}

// ElementByID is GetElementByID returning the concrete type.
func (d *HTMLDocument) ElementByID(id string) *HTMLElement {
	n := findFirst(d.root, func(n *html.Node) bool {
		v, ok := getAttr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	})
	if n == nil {
		return nil
	}
	return &HTMLElement{node: n}
}

// Find is QuerySelector returning the concrete type.
// Unsupported selectors match nothing.
func (d *HTMLDocument) Find(sel string) *HTMLElement {
	return find(d.root, sel)
}

// FindAll returns every element matching sel in document order.
func (d *HTMLDocument) FindAll(sel string) []*HTMLElement {
	return findAll(d.root, sel)
}

func (e *HTMLElement) QuerySelector(sel string) Element {
	if el := e.Find(sel); el != nil {
		return el
	}
	return nil
}

// Find searches the descendants of e.
func (e *HTMLElement) Find(sel string) *HTMLElement {
	return find(e.node, sel)
}

func (e *HTMLElement) FindAll(sel string) []*HTMLElement {
	return findAll(e.node, sel)
}

func (e *HTMLElement) SetText(text string) {
	removeChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetHTML replaces the children of e with the parsed fragment.
func (e *HTMLElement) SetHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.node)
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}
	removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// SetStyle sets one inline style property, keeping the others.
func (e *HTMLElement) SetStyle(property, value string) {
	raw, _ := getAttr(e.node, "style")
	var decls []string
	replaced := false
	for _, decl := range strings.Split(raw, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			if replaced {
				continue
			}
			decl = property + ": " + value
			replaced = true
		}
		decls = append(decls, decl)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	e.SetAttr("style", strings.Join(decls, "; "))
}

// Style returns the value of one inline style property.
func (e *HTMLElement) Style(property string) string {
	raw, _ := getAttr(e.node, "style")
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (e *HTMLElement) AddClass(name string) {
	if hasClass(e.node, name) {
		return
	}
	raw, _ := getAttr(e.node, "class")
	e.SetAttr("class", strings.TrimSpace(raw+" "+name))
}

func (e *HTMLElement) RemoveClass(name string) {
	raw, ok := getAttr(e.node, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(raw) {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

func (e *HTMLElement) HasClass(name string) bool {
	return hasClass(e.node, name)
}

func (e *HTMLElement) SetAttr(name, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *HTMLElement) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

func (e *HTMLElement) Attr(name string) (string, bool) {
	return getAttr(e.node, name)
}

// Text returns the concatenated text content of e.
func (e *HTMLElement) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

// InnerHTML serializes the children of e.
func (e *HTMLElement) InnerHTML() string {
	var sb strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// ErrBadSelector wraps selector syntax errors.
var ErrBadSelector = errors.New("bad selector")

var compiled sync.Map // selector string -> cascadia.Selector

func compileSelector(sel string) (cascadia.Selector, error) {
	if v, ok := compiled.Load(sel); ok {
		return v.(cascadia.Selector), nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadSelector, sel, err)
	}
	compiled.Store(sel, s)
	return s, nil
}

// find returns the first descendant of scope matching sel. Ancestors of
// scope still take part in descendant combinators, as in querySelector.
func find(scope *html.Node, sel string) *HTMLElement {
	s, err := compileSelector(sel)
	if err != nil {
		return nil
	}
	for c := scope.FirstChild; c != nil; c = c.NextSibling {
		if n := s.MatchFirst(c); n != nil {
			return &HTMLElement{node: n}
		}
	}
	return nil
}

func findAll(scope *html.Node, sel string) []*HTMLElement {
	s, err := compileSelector(sel)
	if err != nil {
		return nil
	}
	var out []*HTMLElement
	for c := scope.FirstChild; c != nil; c = c.NextSibling {
		for _, n := range s.MatchAll(c) {
			out = append(out, &HTMLElement{node: n})
		}
	}
	return out
}

// walk visits n and its descendants in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, name string) bool {
	raw, ok := getAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(raw) {
		if c == name {
			return true
		}
	}
	return false
}
