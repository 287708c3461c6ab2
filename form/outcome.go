// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package form

import (
	"encoding/json"
	"fmt"
)

// Outcome is the result of one submission. Exactly one of the
// body or the error is set.
type Outcome interface {
	// Body gets the response payload.
	Body() []byte

	// Error gets the submission error.
	Error() error
}

// Respond creates a success outcome.
func Respond(v any) Outcome {
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case string:
		b = []byte(t)
	case nil:
		break
	default:
		var err error
		if b, err = json.Marshal(t); err != nil {
			return Error(err)
		}
	}
	return &Result{
		Data: b,
	}
}

// Error creates an error outcome.
func Error(err error) Outcome {
	return &Result{
		Err: err,
	}
}

// Errorf creates an error outcome.
func Errorf(format string, a ...any) Outcome {
	return &Result{
		Err: fmt.Errorf(format, a...),
	}
}

//
//
//

// Result provides submission results.
type Result struct {
	Err  error
	Data []byte
}

// Body gets the response payload.
func (r *Result) Body() []byte {
	return r.Data
}

// Error gets the submission error.
func (r *Result) Error() error {
	return r.Err
}
