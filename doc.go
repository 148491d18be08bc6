// Package apimanager is a small client for JSON HTTP APIs.
//
// An Endpoint describes one call. SendRequest checks connectivity, builds the
// request, sends it and decodes the response into a typed value:
//
//	m, err := apimanager.New(apimanager.WithServers(map[string]string{
//	    "api": "https://api.example.com/v1",
//	}))
//
//	ep := apimanager.Endpoint{
//	    Server: apimanager.Server{Name: "api"},
//	    Path:   "/users",
//	    Method: apimanager.MethodGet,
//	    Parameters: apimanager.Params{
//	        "q":    apimanager.String("ada lovelace"),
//	        "page": apimanager.Int(2),
//	    },
//	}
//	users, err := apimanager.SendRequest[[]User](ctx, m, ep, nil, false)
//	if body, ok := apimanager.UnknownBody(err); ok {
//	    // 4xx: inspect the raw body
//	}
//
// GET parameters are sent in the query string. For the other methods they
// are sent as a JSON body, or as multipart/form-data fields when an
// UploadData is given. Every request carries an Accept-Language header
// derived from the configured locale.
//
// Errors are *Error values classified by Kind; match them with errors.Is
// against ErrNoResponse, ErrInvalidURL, ErrStatusNotOK, ErrDecoding,
// ErrUnexpectedStatusCode and ErrUnknown.
package apimanager
