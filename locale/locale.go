package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultTag is used when no usable locale is configured.
const DefaultTag = "en-US"

// Provider supplies the active locale as an Accept-Language value.
type Provider interface {
	Tag() string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() string

// Tag implements Provider.
func (f ProviderFunc) Tag() string { return f() }

// Static returns a Provider for a fixed locale identifier.
func Static(identifier string) Provider {
	tag := AcceptLanguage(identifier)
	return ProviderFunc(func() string { return tag })
}

// Env reads the locale from the POSIX environment variables LC_ALL,
// LC_MESSAGES and LANG, in that order of precedence.
type Env struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Tag implements Provider. It is evaluated on every call so locale changes
// in the environment are picked up.
func (e Env) Tag() string {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range envKeys {
		if v, ok := lookup(key); ok && v != "" {
			return AcceptLanguage(v)
		}
	}
	return DefaultTag
}

// AcceptLanguage converts a locale identifier to an Accept-Language value.
// Underscores become hyphens ("en_US" -> "en-US"); a POSIX codeset or
// modifier suffix (".UTF-8", "@euro") is dropped. Subtags are otherwise kept
// as given: deprecated codes are not replaced ("iw_IL" -> "iw-IL") and
// variants are not rewritten ("en_US_POSIX" -> "en-US-POSIX"). Only the
// letter case of a well-formed BCP 47 tag is normalized ("sr_latn_rs" ->
// "sr-Latn-RS"). "C", "POSIX" and empty identifiers yield DefaultTag.
func AcceptLanguage(identifier string) string {
	id := identifier
	if i := strings.IndexAny(id, ".@"); i >= 0 {
		id = id[:i]
	}
	id = strings.TrimSpace(id)
	switch id {
	case "", "C", "POSIX":
		return DefaultTag
	}
	id = strings.ReplaceAll(id, "_", "-")

	tag, err := language.Raw.Parse(id)
	if err != nil {
		return id
	}
	if canonical := tag.String(); strings.EqualFold(canonical, id) {
		return canonical
	}
	return id
}
