// Package migrations embebe los scripts de goose del esquema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
