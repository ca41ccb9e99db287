//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command curlsrc prepares the curl sources for a static build.
package main

import "go.bug.st/curlsrc/cmd/curlsrc/internal"

func main() {
	internal.Execute()
}
