package apimanager

import (
	"testing"

	"github.com/kbukum/apimanager/validation"
)

func TestMethod(t *testing.T) {
	tests := []struct {
		m       Method
		valid   bool
		hasBody bool
	}{
		{MethodGet, true, false},
		{MethodPost, true, true},
		{MethodPut, true, true},
		{MethodPatch, true, true},
		{MethodDelete, true, true},
		{Method("HEAD"), false, true},
		{Method("get"), false, true},
	}
	for _, tt := range tests {
		if got := tt.m.Valid(); got != tt.valid {
			t.Errorf("%s.Valid() = %v, want %v", tt.m, got, tt.valid)
		}
		if got := tt.m.HasBody(); got != tt.hasBody {
			t.Errorf("%s.HasBody() = %v, want %v", tt.m, got, tt.hasBody)
		}
	}
}

func TestEndpoint_ResolveURL(t *testing.T) {
	tests := []struct {
		name string
		ep   Endpoint
		want string
		ok   bool
	}{
		{
			name: "server and path",
			ep:   Endpoint{Server: Server{BaseURL: "https://api.example.com/v1"}, Path: "/users"},
			want: "https://api.example.com/v1/users",
			ok:   true,
		},
		{
			name: "trailing and leading slashes",
			ep:   Endpoint{Server: Server{BaseURL: "https://api.example.com/v1/"}, Path: "users"},
			want: "https://api.example.com/v1/users",
			ok:   true,
		},
		{
			name: "empty path",
			ep:   Endpoint{Server: Server{BaseURL: "https://api.example.com"}},
			want: "https://api.example.com",
			ok:   true,
		},
		{
			name: "explicit url wins",
			ep:   Endpoint{URL: "http://127.0.0.1:8080/health?x=1", Server: Server{BaseURL: "https://ignored.example"}, Path: "/nope"},
			want: "http://127.0.0.1:8080/health?x=1",
			ok:   true,
		},
		{
			name: "idn host",
			ep:   Endpoint{URL: "https://bücher.example:8443/katalog"},
			want: "https://xn--bcher-kva.example:8443/katalog",
			ok:   true,
		},
		{
			name: "ipv6 host",
			ep:   Endpoint{URL: "http://[::1]/x"},
			want: "http://[::1]/x",
			ok:   true,
		},
		{name: "nothing to resolve", ep: Endpoint{Path: "/users"}},
		{name: "server name only", ep: Endpoint{Server: Server{Name: "api"}, Path: "/users"}},
		{name: "relative url", ep: Endpoint{URL: "/users"}},
		{name: "no host", ep: Endpoint{URL: "mailto:ada@example.com"}},
		{name: "unparsable", ep: Endpoint{URL: "http://[::1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := tc.ep.ResolveURL()
			if ok != tc.ok {
				t.Fatalf("ResolveURL() ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got := u.String(); got != tc.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEndpoint_Validate(t *testing.T) {
	ok := Endpoint{Method: MethodPost, Server: Server{BaseURL: "https://api.example.com"}}
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		ep    Endpoint
		field string
	}{
		{"missing method", Endpoint{}, "method"},
		{"unknown method", Endpoint{Method: "TRACE"}, "method"},
		{"bad base url", Endpoint{Method: MethodGet, Server: Server{BaseURL: "not a url"}}, "server.base_url"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ep.Validate()
			verr, isValidation := err.(*validation.Error)
			if !isValidation {
				t.Fatalf("expected *validation.Error, got %v", err)
			}
			if !verr.Has(tc.field) {
				t.Errorf("expected error on %q, got %v", tc.field, verr)
			}
		})
	}
}
