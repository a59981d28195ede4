// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package curseforge

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// UpstreamError is returned for any non-2xx upstream answer and for transport
// failures where no answer was received at all.
type UpstreamError struct {
	StatusCode int    // StatusCode is the upstream status, or 500 without a response.
	Body       []byte // Body is the upstream error body, verbatim.
	Err        error  // Err retains the transport failure, if any.
}

// Error implements the error interface for UpstreamError.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Unwrap exposes the transport failure for errors.Is / errors.As checks.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Detail is the value surfaced to callers as {"error": <detail>}: the upstream
// body as JSON when it parses, as a string otherwise, and the transport
// error message when there was no response.
func (e *UpstreamError) Detail() any {
	if len(e.Body) > 0 {
		if json.Valid(e.Body) {
			return json.RawMessage(e.Body)
		}
		return string(e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode)
}

func transportError(err error) *UpstreamError {
	return &UpstreamError{StatusCode: http.StatusInternalServerError, Err: err}
}
