// Package migrations embeds the goose SQL migrations for the rate
// reference tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
