//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFlag is returned when a flag set contains bits or names
	// that are not part of InstallFlags.
	ErrUnknownFlag = errors.New("unknown install flag")
	// ErrMissingVersion is returned when no curl version has been given.
	ErrMissingVersion = errors.New("missing curl version")
	// ErrUnsafePath is returned for archive members escaping the
	// extraction directory.
	ErrUnsafePath = errors.New("unsafe path in archive")
)

// RetrievalError is returned when the server answers with a status code
// of 400 or above.
type RetrievalError struct {
	URL        string
	StatusCode int
	// Body is the text sent by the server along with the error status.
	Body string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("could not download from %s: received %q", e.URL, e.Body)
}
