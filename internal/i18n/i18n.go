// Package i18n tags learner-facing text with the learner's preferred
// language. No translation happens; supported codes get a label prefix.
package i18n

import "strings"

// Language is a learner's preferred language code (e.g. "ta").
type Language string

const (
	Tamil  Language = "ta"
	Hindi  Language = "hi"
	Telugu Language = "te"
)

var labels = map[Language]string{
	Tamil:  "Tamil",
	Hindi:  "Hindi",
	Telugu: "Telugu",
}

// Supported reports whether text in this language gets a translation tag.
func (l Language) Supported() bool {
	_, ok := labels[l]
	return ok
}

// Upper returns the code in upper case, as shown in the learner panel.
func (l Language) Upper() string {
	return strings.ToUpper(string(l))
}

// Localize prefixes text with "[<Name> Translation]: " for the supported
// codes and returns it unchanged for anything else.
func Localize(text string, code Language) string {
	name, ok := labels[code]
	if !ok {
		return text
	}
	return "[" + name + " Translation]: " + text
}
