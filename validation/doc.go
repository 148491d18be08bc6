// Package validation wraps go-playground/validator with field names taken
// from json or mapstructure tags and a single error type listing every
// failed field.
//
//	type Payload struct {
//	    ID   int    `json:"id" validate:"required"`
//	    Name string `json:"name" validate:"required"`
//	}
//
//	if err := validation.Validate(p); err != nil {
//	    // err is *validation.Error
//	}
package validation
