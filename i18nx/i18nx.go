// Package i18nx provides translation bundle loading and a small lookup surface over go-i18n.
// Message files are YAML or JSON, keyed by message ID, with CLDR plural support.
package i18nx

import (
	"encoding/json"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Bundle holds translations for any number of languages, with a fallback language
// used when a requested language has no translation for a message.
type Bundle struct {
	bundle *i18n.Bundle
}

// NewBundle creates a [Bundle] with the given fallback language.
func NewBundle(fallback language.Tag) *Bundle {
	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	return &Bundle{bundle: bundle}
}

// LoadFile loads a message file like "active.es.yaml".
// The language is taken from the file name.
func (b *Bundle) LoadFile(path string) error {
	_, err := b.bundle.LoadMessageFile(path)
	return err
}

// LoadBytes loads messages from an in-memory document.
// The path is only used to determine the language and format, like "active.es.yaml".
func (b *Bundle) LoadBytes(data []byte, path string) error {
	_, err := b.bundle.ParseMessageFileBytes(data, path)
	return err
}

// Translator resolves message IDs for one preference-ordered set of languages.
type Translator struct {
	localizer *i18n.Localizer
}

// Translator creates a [Translator] preferring the given languages in order,
// like the contents of an Accept-Language header.
func (b *Bundle) Translator(langs ...string) *Translator {
	return &Translator{localizer: i18n.NewLocalizer(b.bundle, langs...)}
}

// T resolves a message ID, optionally with template data for {{.Name}} style placeholders.
// Unknown IDs resolve to the ID itself so a missing translation never breaks output.
func (t *Translator) T(id string, data ...map[string]any) string {
	conf := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		conf.TemplateData = data[0]
	}
	msg, err := t.localizer.Localize(conf)
	if err != nil {
		return id
	}
	return msg
}

// N resolves a message ID with a plural count, available to templates as {{.Count}}.
func (t *Translator) N(id string, count int, data ...map[string]any) string {
	templateData := map[string]any{"Count": count}
	if len(data) > 0 {
		for key, val := range data[0] {
			templateData[key] = val
		}
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return id
	}
	return msg
}
