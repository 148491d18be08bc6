package apimanager

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("a b+c"), "a b+c"},
		{Int(-42), "-42"},
		{Float(1.5), "1.5"},
		{Float(1000000), "1000000"},
		{Float(0.1), "0.1"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Value{}, ""},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	p := Params{
		"name":   String("Ada"),
		"age":    Int(36),
		"score":  Float(9.5),
		"active": Bool(true),
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"active":true,"age":36,"name":"Ada","score":9.5}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var p Params
	if err := json.Unmarshal([]byte(`{"s":"x","i":7,"f":2.25,"e":1e3,"b":false}`), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	want := map[string]any{"s": "x", "i": int64(7), "f": 2.25, "e": 1000.0, "b": false}
	got := map[string]any{}
	for k, v := range p {
		got[k] = v.Interface()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_UnmarshalJSONRejectsComposite(t *testing.T) {
	for _, in := range []string{`[1,2]`, `{"a":1}`, `null`} {
		var v Value
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Errorf("Unmarshal(%s) should fail", in)
		}
	}
}

func TestParams_Keys(t *testing.T) {
	p := Params{"b": Int(1), "a": Int(2), "c": Int(3)}
	if diff := cmp.Diff([]string{"a", "b", "c"}, p.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if got := Params(nil).Keys(); len(got) != 0 {
		t.Errorf("nil Keys = %v, want empty", got)
	}
}
