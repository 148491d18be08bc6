package apimanager

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	u, ok := DecodeJSON[user]([]byte(`{"id":3,"name":"Grace"}`))
	if !ok || u.ID != 3 || u.Name != "Grace" {
		t.Errorf("DecodeJSON = %+v, %v", u, ok)
	}

	if _, ok := DecodeJSON[user]([]byte(`not json`)); ok {
		t.Error("DecodeJSON should fail on invalid input")
	}
	if _, ok := DecodeJSON[user](nil); ok {
		t.Error("DecodeJSON should fail on empty input")
	}
}

func TestPrettyJSON(t *testing.T) {
	got, ok := PrettyJSON([]byte(`{"name":"Ada","tags":["a","b"],"meta":{"n":1},"bio":"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}`))
	if !ok {
		t.Fatal("PrettyJSON reported invalid JSON")
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("PrettyJSON output is not JSON:\n%s", got)
	}
	if !strings.HasPrefix(got, "{\n  \"name\": \"Ada\",\n") {
		t.Errorf("PrettyJSON not indented:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("PrettyJSON kept trailing newline: %q", got)
	}

	for _, in := range []string{"", "{", "hello"} {
		if _, ok := PrettyJSON([]byte(in)); ok {
			t.Errorf("PrettyJSON(%q) should fail", in)
		}
	}
}
