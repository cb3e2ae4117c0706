// Package manners provides localized greetings. Each provider satisfies both
// Welcomer and Farewell, and is registered under both keys.
package manners

import (
	"fmt"
	"io"
	"sort"
)

// Welcomer greets.
type Welcomer interface {
	Greet(w io.Writer) error
}

// Farewell says goodbye.
type Farewell interface {
	Farewell(w io.Writer) error
}

// Provider is a Welcomer and a Farewell.
type Provider interface {
	Welcomer
	Farewell
	Locale() string
}

type phrasebook struct {
	locale  string
	hello   string
	goodbye string
}

func (p *phrasebook) Locale() string { return p.locale }

func (p *phrasebook) Greet(w io.Writer) error {
	_, err := fmt.Fprintln(w, p.hello)
	return err
}

func (p *phrasebook) Farewell(w io.Writer) error {
	_, err := fmt.Fprintln(w, p.goodbye)
	return err
}

// English, French and Spanish return providers for their locale.
func English() Provider { return &phrasebook{locale: "english", hello: "Hello!", goodbye: "Goodbye!"} }
func French() Provider  { return &phrasebook{locale: "french", hello: "Bonjour!", goodbye: "Au Revoir!"} }
func Spanish() Provider { return &phrasebook{locale: "spanish", hello: "¡Hola!", goodbye: "¡Adiós!"} }

var providers = map[string]func() Provider{
	"english": English,
	"french":  French,
	"spanish": Spanish,
}

// Locales returns the supported locales in sorted order.
func Locales() []string {
	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ForLocale returns a new provider for locale.
func ForLocale(locale string) (Provider, bool) {
	newProvider, ok := providers[locale]
	if !ok {
		return nil, false
	}
	return newProvider(), true
}
