// Package datafiles holds files compiled into the binaries.
package datafiles

import "embed"

// Templates holds the html/template sources of the web pages.
//
//go:embed index.html bank.html
var Templates embed.FS
