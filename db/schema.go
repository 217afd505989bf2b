package db

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

// Migrations berisi semua file migrasi SQL, di-embed ke dalam binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir adalah direktori di dalam Migrations.
const MigrationsDir = "migrations"

// SchemaSQL menggabungkan semua file .up.sql sesuai urutan versinya.
func SchemaSQL() (string, error) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		data, err := fs.ReadFile(Migrations, MigrationsDir+"/"+name)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	return b.String(), nil
}
