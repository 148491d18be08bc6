package apimanager

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/kbukum/apimanager/validation"
)

// Method is an HTTP method supported by the request builder.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// HasBody reports whether parameters go in the body rather than the query.
func (m Method) HasBody() bool {
	return m != MethodGet
}

// Server identifies the host an endpoint targets. A Server with an empty
// BaseURL is looked up by Name in the Manager's server registry.
type Server struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`
}

// Endpoint describes one API call. It is treated as immutable: building a
// request never modifies its maps.
type Endpoint struct {
	// Path is appended to the server base URL.
	Path string `json:"path"`
	// Method is the HTTP method.
	Method Method `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	// Headers are sent as-is.
	Headers map[string]string `json:"headers,omitempty"`
	// Parameters go in the query string for GET and in the body otherwise.
	// A non-nil empty map still produces a JSON body.
	Parameters Params `json:"parameters,omitempty"`
	// URL, when set, is used instead of Server and Path.
	URL string `json:"url,omitempty"`
	// Server is the target host.
	Server Server `json:"server"`
}

// Validate checks the struct tags of the endpoint.
func (e Endpoint) Validate() error {
	return validation.Validate(e)
}

// ResolveURL returns the absolute URL of the endpoint, or false when there is
// none: no URL and no server base URL, an unparsable URL, or a URL without
// scheme and host. Internationalized host names are converted to punycode.
func (e Endpoint) ResolveURL() (*url.URL, bool) {
	raw := e.URL
	if raw == "" {
		if e.Server.BaseURL == "" {
			return nil, false
		}
		raw = joinURL(e.Server.BaseURL, e.Path)
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, false
	}
	hostname := u.Hostname()
	host, err := asciiHost(hostname)
	if err != nil {
		return nil, false
	}
	if host != hostname {
		if port := u.Port(); port != "" {
			host = net.JoinHostPort(host, port)
		}
		u.Host = host
	}
	return u, true
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func asciiHost(host string) (string, error) {
	if net.ParseIP(host) != nil || isASCII(host) {
		return host, nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("host %q: %w", host, err)
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
