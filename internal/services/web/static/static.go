// Package static embeds the pricing host's stylesheet.
package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
