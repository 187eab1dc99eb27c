// Package migrations embeds the SQL schema so the binary can migrate
// regardless of the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
