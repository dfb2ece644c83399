// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of an uncompress run.
type TelemetryData struct {
	// Changed is true if the destination was created or overwritten
	Changed bool `json:"changed"`

	// DecompressedSize is the size of the decompressed content
	DecompressedSize int64 `json:"decompressed_size"`

	// Format is the detected compression format
	Format string `json:"format"`

	// InputSize is the size of the compressed input
	InputSize int64 `json:"input_size"`

	// LastError is the error that terminated the run
	LastError error `json:"last_error"`

	// UncompressDuration is the time the run took
	UncompressDuration time.Duration `json:"uncompress_duration"`
}

// String returns a string representation of [TelemetryData].
func (td TelemetryData) String() string {
	b, _ := json.Marshal(td)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (td TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if td.LastError != nil {
		lastError = td.LastError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastError string `json:"last_error"`
		*Alias
	}{
		LastError: lastError,
		Alias:     (*Alias)(&td),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a run has finished. It can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// now is a function point to get the current time. Redirected in tests.
var now = time.Now

// captureDuration stores the time elapsed since start in td.
func captureDuration(td *TelemetryData, start time.Time) {
	td.UncompressDuration = now().Sub(start)
}
