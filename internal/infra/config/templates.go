package config

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateData carries the placeholder values substituted into follow-up
// scripts.
type TemplateData struct {
	Name          string
	Establishment string
	Phone         string
}

type MessageTemplate struct {
	Subject string
	Body    string
}

// TemplateTable maps script keys referenced by automation rules to message
// templates. Every template is parsed once at load, so a broken script
// fails startup instead of a send.
type TemplateTable struct {
	subjects map[string]string
	bodies   map[string]*template.Template
}

// Default follow-up scripts shipped with the CRM. Admin-defined custom
// texts on a rule take precedence over these.
var defaultScripts = map[string]MessageTemplate{
	"followup_lead": {
		Subject: "Plano de saúde para o seu estabelecimento",
		Body: "Olá {{.Name}}! Vimos seu interesse no plano de saúde para " +
			"{{.Establishment}}. Podemos agendar uma conversa rápida? " +
			"Qualquer dúvida, estamos à disposição.",
	},
	"followup_qualified": {
		Subject: "Sua proposta de plano de saúde está quase pronta",
		Body: "Olá {{.Name}}! Estamos preparando as condições para o seu " +
			"{{.Establishment}}. Falta pouco para fecharmos — podemos " +
			"retomar pelo telefone {{.Phone}}?",
	},
	"followup_proposal": {
		Subject: "Sobre a proposta que enviamos",
		Body: "Olá {{.Name}}! Enviamos a proposta do plano para o seu " +
			"{{.Establishment}} há alguns dias. Ficou alguma dúvida? " +
			"Podemos ajustar valores e coberturas.",
	},
}

// NewTemplateTable builds the table from the default scripts plus any
// overrides, validating every template at load time.
func NewTemplateTable(overrides map[string]MessageTemplate) (*TemplateTable, error) {
	table := &TemplateTable{
		subjects: make(map[string]string),
		bodies:   make(map[string]*template.Template),
	}

	add := func(key string, tmpl MessageTemplate) error {
		parsed, err := template.New(key).Option("missingkey=error").Parse(tmpl.Body)
		if err != nil {
			return fmt.Errorf("invalid template %q: %w", key, err)
		}
		table.subjects[key] = tmpl.Subject
		table.bodies[key] = parsed
		return nil
	}

	for key, tmpl := range defaultScripts {
		if err := add(key, tmpl); err != nil {
			return nil, err
		}
	}
	for key, tmpl := range overrides {
		if err := add(key, tmpl); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// Has reports whether a script key exists. Rule admin endpoints check this
// at save time so a rule can never point at a missing script.
func (t *TemplateTable) Has(key string) bool {
	_, ok := t.bodies[key]
	return ok
}

func (t *TemplateTable) Resolve(scriptKey string, data TemplateData) (string, string, error) {
	tmpl, ok := t.bodies[scriptKey]
	if !ok {
		return "", "", fmt.Errorf("unknown script key %q", scriptKey)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render script %q: %w", scriptKey, err)
	}

	return t.subjects[scriptKey], body.String(), nil
}
