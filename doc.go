//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package curlsrc downloads and unpacks the libcurl (and optionally nghttp2)
// source archives and builds the list of sources, include directories and
// macros needed to compile libcurl statically into a native extension.
package curlsrc
