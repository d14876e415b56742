package whatsapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/barsaude-crm/internal/infra/whatsapp"
)

func TestPrepareLocalNumberGetsCountryCode(t *testing.T) {
	p := whatsapp.NewPreparer()

	msg, err := p.Prepare("(11) 99999-0000", "Olá Bar do Zé!")

	assert.NoError(t, err)
	assert.Equal(t, "5511999990000", msg.Phone)
	assert.Equal(t, "Olá Bar do Zé!", msg.Body)
	assert.Contains(t, msg.Link, "https://wa.me/5511999990000?text=")
	assert.Contains(t, msg.Link, "Ol%C3%A1+Bar+do+Z%C3%A9%21")
}

func TestPrepareKeepsExistingCountryCode(t *testing.T) {
	p := whatsapp.NewPreparer()

	msg, err := p.Prepare("+55 11 99999-0000", "oi")

	assert.NoError(t, err)
	assert.Equal(t, "5511999990000", msg.Phone)
}

func TestPrepareRejectsShortNumber(t *testing.T) {
	p := whatsapp.NewPreparer()

	_, err := p.Prepare("9999", "oi")

	assert.Error(t, err)
}
