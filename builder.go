package apimanager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/apimanager/locale"
)

const (
	headerAcceptLanguage = "Accept-Language"
	headerContentType    = "Content-Type"
	contentTypeJSON      = "application/json"
)

// Builder turns an Endpoint into an *http.Request.
type Builder struct {
	locale   locale.Provider
	now      func() time.Time
	boundary func() string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock sets the clock used for upload file names.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithBoundary sets the multipart boundary generator. It is called once per
// request.
func WithBoundary(fn func() string) BuilderOption {
	return func(b *Builder) { b.boundary = fn }
}

// NewBuilder creates a Builder taking Accept-Language from loc. A nil loc
// reads the locale from the environment.
func NewBuilder(loc locale.Provider, opts ...BuilderOption) *Builder {
	if loc == nil {
		loc = locale.Env{}
	}
	b := &Builder{
		locale:   loc,
		now:      time.Now,
		boundary: newBoundary,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func newBoundary() string {
	return "Boundary-" + strings.ToUpper(uuid.NewString())
}

// Build assembles the request for ep. GET parameters are encoded in the
// query string and never produce a body. For other methods file selects a
// multipart body, otherwise parameters are sent as JSON.
func (b *Builder) Build(ctx context.Context, ep Endpoint, file *UploadData) (*http.Request, error) {
	if !ep.Method.Valid() {
		return nil, newError(KindInvalidURL, 0, nil, fmt.Errorf("unsupported method %q", ep.Method))
	}
	u, ok := ep.ResolveURL()
	if !ok {
		return nil, newError(KindInvalidURL, 0, nil, nil)
	}

	header := make(http.Header, len(ep.Headers)+2)
	for k, v := range ep.Headers {
		header.Set(k, v)
	}
	if header.Get(headerAcceptLanguage) == "" {
		header.Set(headerAcceptLanguage, b.locale.Tag())
	}

	var body []byte
	switch {
	case !ep.Method.HasBody():
		u.RawQuery = appendQuery(u.RawQuery, ep.Parameters)
	case file != nil:
		data, contentType, err := encodeMultipart(ep.Parameters, file, b.boundary(), b.now())
		if err != nil {
			return nil, newError(KindStatusNotOK, 0, nil, fmt.Errorf("encode multipart body: %w", err))
		}
		body = data
		header.Set(headerContentType, contentType)
	case ep.Parameters != nil:
		data, err := encodeJSON(ep.Parameters)
		if err != nil {
			return nil, newError(KindStatusNotOK, 0, nil, fmt.Errorf("encode json body: %w", err))
		}
		body = data
		if header.Get(headerContentType) == "" {
			header.Set(headerContentType, contentTypeJSON)
		}
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, string(ep.Method), u.String(), r)
	if err != nil {
		return nil, newError(KindInvalidURL, 0, nil, err)
	}
	req.Header = header
	return req, nil
}

// appendQuery adds params to an existing raw query in sorted key order.
// Spaces are encoded as %20 and a literal '+' as %2B so no server reads
// either back as the other.
func appendQuery(rawQuery string, params Params) string {
	if len(params) == 0 {
		return rawQuery
	}
	var sb strings.Builder
	sb.WriteString(rawQuery)
	for _, k := range params.Keys() {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(queryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(queryEscape(params[k].String()))
	}
	return sb.String()
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func encodeJSON(params Params) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(params); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// encodeMultipart writes one form-data section per parameter followed by the
// "file" section, all delimited by boundary.
func encodeMultipart(params Params, file *UploadData, boundary string, now time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", err
	}

	for _, k := range params.Keys() {
		if err := w.WriteField(k, params[k].String()); err != nil {
			return nil, "", err
		}
	}

	mimeType := file.mimeType()
	filename := strconv.FormatInt(now.Unix(), 10) + mimeType
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(filename)+`"`)
	h.Set(headerContentType, mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
