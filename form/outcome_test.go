// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package form

import (
	"bytes"
	"testing"
)

func TestRespond(t *testing.T) {
	res := Respond("pong")

	got, want := res.Body(), []byte("pong")
	if !bytes.Equal(got, want) {
		t.Errorf("Want outcome body %s, got %s", want, got)
	}
	if res.Error() != nil {
		t.Errorf("Want nil outcome error, got %s", res.Error())
	}
}

func TestRespond_Marshal(t *testing.T) {
	res := Respond(map[string]string{"status": "ok"})

	got, want := res.Body(), []byte(`{"status":"ok"}`)
	if !bytes.Equal(got, want) {
		t.Errorf("Want outcome body %s, got %s", want, got)
	}
}

func TestErrorf(t *testing.T) {
	res := Errorf("submission error")

	got, want := res.Error().Error(), "submission error"
	if got != want {
		t.Errorf("Want outcome error %s, got %s", want, got)
	}
	if res.Body() != nil {
		t.Errorf("Want nil outcome body, got %s", res.Body())
	}
}
