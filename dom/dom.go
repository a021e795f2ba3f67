// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

// Document is the query surface renderers need from a page.
// Lookups return nil when nothing matches.
type Document interface {
	GetElementByID(id string) Element
	QuerySelector(selector string) Element
}

// Element is a mutable node of a Document.
type Element interface {
	QuerySelector(selector string) Element

	SetText(text string)
	SetHTML(fragment string) error
	SetStyle(property, value string)

	AddClass(name string)
	RemoveClass(name string)

	SetAttr(name, value string)
	RemoveAttr(name string)
}
