// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package form implements the submission handler: it reads the
// current input value, issues the remote call and renders the
// outcome to the output region.
package form

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/probeops/latencyprobe/logger"
	"github.com/probeops/latencyprobe/render"
)

// ErrEmptyInput is returned when a submission is attempted
// with an empty input value. The message is rendered verbatim.
var ErrEmptyInput = errors.New("Please enter a user value")

// An Input provides the current value of the submission input,
// read at submission time.
type Input interface {
	Value() string
}

// The InputFunc type is an adapter to allow the use of
// ordinary functions as submission inputs.
type InputFunc func() string

// Value calls f.
func (f InputFunc) Value() string {
	return f()
}

// A Submitter issues the remote call for a submission.
type Submitter interface {
	Submit(ctx context.Context, user string) (json.RawMessage, error)
}

// A Form binds an input, an output region and a remote client.
// Every submission ends in exactly one render: the response
// payload pretty-printed on success, or an error message on
// any failure. Errors never propagate past the form.
//
// Overlapping submissions are not serialized. Both calls run
// independently and the last one to complete determines the
// final region content.
type Form struct {
	Input  Input
	Output render.Region
	Client Submitter
}

// New returns a form bound to the given input, output region
// and client.
func New(input Input, output render.Region, client Submitter) *Form {
	return &Form{
		Input:  input,
		Output: output,
		Client: client,
	}
}

// Submit performs one submission and returns its outcome. The
// outcome is also rendered to the output region.
func (f *Form) Submit(ctx context.Context) Outcome {
	log := logger.FromContext(ctx).
		With("submission.id", uuid.NewString())

	value := f.Input.Value()
	if value == "" {
		log.Debug("submission rejected, empty input")
		render.Pre(f.Output, ErrEmptyInput.Error())
		return Error(ErrEmptyInput)
	}

	log.Debug("submit", "user", value)

	body, err := f.Client.Submit(ctx, value)
	if err != nil {
		log.Debug("submission failed", "error", err)
		render.Pre(f.Output, "Error: "+err.Error())
		return Error(err)
	}

	// decode the response payload into a temporary data
	// structure and re-encode it with indentation for display.
	// the client has already verified the payload parses.
	var temp any
	if err := json.Unmarshal(body, &temp); err != nil {
		log.Debug("submission failed", "error", err)
		render.Pre(f.Output, "Error: "+err.Error())
		return Error(err)
	}
	pretty, err := json.MarshalIndent(temp, "", "  ")
	if err != nil {
		log.Debug("submission failed", "error", err)
		render.Pre(f.Output, "Error: "+err.Error())
		return Error(err)
	}

	render.Pre(f.Output, string(pretty))
	return Respond([]byte(body))
}
