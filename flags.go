//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"fmt"
	"strings"
)

// InstallFlags selects the optional features compiled into curl.
type InstallFlags uint8

const (
	// None builds the baseline only.
	None InstallFlags = 0
	// NTLM compiles the NTLM authentication sources, otherwise NTLM is
	// disabled with CURL_DISABLE_NTLM.
	NTLM InstallFlags = 0b1
	// HTTP2 installs nghttp2 next to curl.
	HTTP2 InstallFlags = 0b10
	// SPNEGO compiles the Negotiate authentication and defines USE_SPNEGO.
	SPNEGO InstallFlags = 0b100

	allFlags = NTLM | HTTP2 | SPNEGO
)

var flagNames = []struct {
	flag InstallFlags
	name string
}{
	{NTLM, "ntlm"},
	{HTTP2, "http2"},
	{SPNEGO, "spnego"},
}

// NewInstallFlags converts raw bits to InstallFlags, bits outside the known
// flags are rejected.
func NewInstallFlags(bits uint) (InstallFlags, error) {
	if bits&^uint(allFlags) != 0 {
		return None, fmt.Errorf("%w: %#b", ErrUnknownFlag, bits&^uint(allFlags))
	}
	return InstallFlags(bits), nil
}

// ParseInstallFlags parses a list of flag names separated by commas or "|",
// as produced by String. The names are case insensitive; "none" and the
// empty string mean None.
func ParseInstallFlags(s string) (InstallFlags, error) {
	flags := None
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, f := range flagNames {
			if f.name == name {
				flags |= f.flag
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("%w: %q", ErrUnknownFlag, field)
		}
	}
	return flags, nil
}

// Has reports whether all the flags in f are set.
func (flags InstallFlags) Has(f InstallFlags) bool {
	return flags&f == f
}

// Validate returns ErrUnknownFlag if unknown bits are set.
func (flags InstallFlags) Validate() error {
	_, err := NewInstallFlags(uint(flags))
	return err
}

func (flags InstallFlags) String() string {
	if flags == None {
		return "none"
	}
	var names []string
	for _, f := range flagNames {
		if flags.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	if rest := flags &^ allFlags; rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint8(rest)))
	}
	return strings.Join(names, "|")
}
