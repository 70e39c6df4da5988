package main

import (
	"github.com/leonelquinteros/gotext"
)

// Translation domain of the command messages.
const localeDomain = "default"

// initLocale loads the translations for lang from dir. Untranslated strings
// are shown as is.
func initLocale(dir, lang string) {
	if dir == "" {
		dir = "locales"
	}
	gotext.Configure(dir, lang, localeDomain)
}

// tr returns the translation of a message.
func tr(msg string, vars ...any) string {
	return gotext.Get(msg, vars...)
}
