package apimanager

import "net/http"

// DefaultMimeType is the upload mime type used when none is given.
const DefaultMimeType = "someType"

// UploadData is a file sent with a non-GET request. Its presence switches the
// body to multipart/form-data.
type UploadData struct {
	Data     []byte
	MimeType string
}

func (u *UploadData) mimeType() string {
	if u.MimeType == "" {
		return DefaultMimeType
	}
	return u.MimeType
}

// Response is the raw result of one round trip.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the full response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError returns true if the status code is 4xx.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}
