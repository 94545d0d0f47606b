// Package migrations embeds the database schema applied at startup when
// DB_MIGRATE is enabled.
package migrations

import "embed"

//go:embed schema.sql
var FS embed.FS

func Schema() (string, error) {
	b, err := FS.ReadFile("schema.sql")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
