package apimanager

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
)

// DecodeJSON decodes data into T, reporting false on any failure.
func DecodeJSON[T any](data []byte) (T, bool) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// PrettyJSON returns data indented for display, or false when data is not
// valid JSON.
func PrettyJSON(data []byte) (string, bool) {
	if !json.Valid(data) {
		return "", false
	}
	return strings.TrimSuffix(string(pretty.PrettyOptions(data, &prettyOptions)), "\n"), true
}

var prettyOptions = pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}
