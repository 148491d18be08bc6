// Package locale derives the Accept-Language header value from a locale
// identifier.
//
// Identifiers come from an injected Provider: a fixed value (Static) or the
// POSIX locale environment (Env). AcceptLanguage is the pure conversion
// from an identifier such as "en_US.UTF-8" to a BCP 47 tag such as "en-US".
package locale
