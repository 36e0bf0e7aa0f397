// Package migrations embeds the keystore schema migrations so the binary
// carries them.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
