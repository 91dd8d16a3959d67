// Package templates embeds the server-rendered pages so the binary and the
// handler tests find them regardless of working directory.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
