// Package migrations embeds the SQL schema so the server binary can migrate
// the database without shipping files alongside it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
