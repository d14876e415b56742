package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

var nonDigits = regexp.MustCompile(`\D`)

// Preparer stages WhatsApp follow-ups without sending them: it builds a
// click-to-chat link that opens a pre-filled conversation for the
// salesperson. DefaultCountryCode is prefixed to local numbers.
type Preparer struct {
	DefaultCountryCode string
}

func NewPreparer() *Preparer {
	return &Preparer{DefaultCountryCode: "55"}
}

func (p *Preparer) Prepare(phone, body string) (usecase.PreparedMessage, error) {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		return usecase.PreparedMessage{}, fmt.Errorf("phone number %q is too short", phone)
	}

	// Local numbers (10-11 digits) get the country code; anything longer is
	// assumed to carry one already.
	if len(digits) <= 11 && !strings.HasPrefix(digits, p.DefaultCountryCode) {
		digits = p.DefaultCountryCode + digits
	}

	return usecase.PreparedMessage{
		Phone: digits,
		Body:  body,
		Link:  fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(body)),
	}, nil
}
