package apimanager

import (
	"encoding/json"
	"errors"

	"github.com/kbukum/apimanager/validation"
)

// Decode classifies resp by status code and decodes a 2xx body into T.
//
//   - nil response: KindNoResponse
//   - 2xx: the decoded value. Malformed JSON, an empty body, a type
//     mismatch or a failed `validate` tag on T gives KindDecoding; any other
//     decode failure gives KindStatusNotOK.
//   - 4xx: KindUnknown with the raw body
//   - anything else: KindUnexpectedStatusCode
//
// Fields tagged `validate:"required"` must be present and non-zero. This
// applies to every struct element when T is a slice, array or map. A required
// key whose zero value is legitimate (0, "", false) should be a pointer
// field: `required` on a pointer only rejects a missing or null key.
func Decode[T any](resp *Response) (T, error) {
	var zero T
	switch {
	case resp == nil:
		return zero, newError(KindNoResponse, 0, nil, nil)
	case resp.IsSuccess():
		return decodeBody[T](resp)
	case resp.IsClientError():
		return zero, newError(KindUnknown, resp.StatusCode, resp.Body, nil)
	default:
		return zero, newError(KindUnexpectedStatusCode, resp.StatusCode, nil, nil)
	}
}

func decodeBody[T any](resp *Response) (T, error) {
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		var zero T
		if isPayloadError(err) {
			return zero, newError(KindDecoding, resp.StatusCode, nil, err)
		}
		return zero, newError(KindStatusNotOK, resp.StatusCode, nil, err)
	}
	if err := validation.Validate(v); err != nil {
		var zero T
		return zero, newError(KindDecoding, resp.StatusCode, nil, err)
	}
	return v, nil
}

// isPayloadError reports whether err was caused by the JSON itself rather
// than by the target type's own unmarshal logic.
func isPayloadError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
