// Package sql embute as migrações goose do espelho remoto.
package sql

import "embed"

//go:embed *.sql
var Migrations embed.FS
