// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contact

import (
	"net/url"
	"strings"
)

const (
	DefaultRecipient = "farsoun@icloud.com"
	DefaultSubject   = "Support for Education & Mother's Insurance"

	// AmountFallback stands in for an empty custom amount.
	AmountFallback = "To be agreed"
)

// Form field names
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCountry = "country"
	FieldMessage = "message"
	FieldAmount  = "custom-amount"
	FieldChosen  = "chosen"
)

// Submission is one contact form post.
type Submission struct {
	Name         string
	Email        string
	Country      string
	Message      string
	CustomAmount string
	Chosen       []string
}

// Trimmed returns s with surrounding whitespace removed from the text fields.
// Chosen values are kept verbatim.
func (s Submission) Trimmed() Submission {
	return Submission{
		Name:         strings.TrimSpace(s.Name),
		Email:        strings.TrimSpace(s.Email),
		Country:      strings.TrimSpace(s.Country),
		Message:      strings.TrimSpace(s.Message),
		CustomAmount: strings.TrimSpace(s.CustomAmount),
		Chosen:       s.Chosen,
	}
}

// Amount returns the planned amount line value.
func (s Submission) Amount() string {
	if s.CustomAmount == "" {
		return AmountFallback
	}
	return s.CustomAmount
}

// FromForm reads a submission from posted form values.
// Checked boxes share the "chosen" name and arrive in document order.
func FromForm(v url.Values) Submission {
	return Submission{
		Name:         v.Get(FieldName),
		Email:        v.Get(FieldEmail),
		Country:      v.Get(FieldCountry),
		Message:      v.Get(FieldMessage),
		CustomAmount: v.Get(FieldAmount),
		Chosen:       append([]string(nil), v[FieldChosen]...),
	}.Trimmed()
}

// Body renders the plain-text email body.
func Body(s Submission) string {
	var b strings.Builder
	b.WriteString("Name: " + orDash(s.Name) + "\n")
	b.WriteString("Email: " + orDash(s.Email) + "\n")
	b.WriteString("Country/City: " + orDash(s.Country) + "\n")
	b.WriteString("Chosen services/donation:\n")
	for _, item := range s.Chosen {
		b.WriteString(" - " + item + "\n")
	}
	b.WriteString("\nPlanned amount: " + s.Amount() + "\n\n")
	b.WriteString("Message:\n" + orDash(s.Message) + "\n")
	return b.String()
}

// Mailer builds mailto links for a fixed recipient and subject.
type Mailer struct {
	Recipient string
	Subject   string
}

// NewMailer fills empty settings with the defaults.
func NewMailer(recipient, subject string) Mailer {
	if recipient == "" {
		recipient = DefaultRecipient
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return Mailer{Recipient: recipient, Subject: subject}
}

// URL returns the mailto link that opens a draft of s.
func (m Mailer) URL(s Submission) string {
	return "mailto:" + m.Recipient +
		"?subject=" + EncodeComponent(m.Subject) +
		"&body=" + EncodeComponent(Body(s))
}

// EncodeComponent percent-encodes every byte outside A-Z a-z 0-9 and -_.!~*'().
// Spaces become %20, never '+', which mail clients do not decode.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
