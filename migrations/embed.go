// Package migrations embeds the SQL schema applied by the sqlite backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Initial is the file holding the base schema.
const Initial = "001_kv.up.sql"
