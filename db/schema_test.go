package db

import (
	"strings"
	"testing"
)

func TestSchemaSQL_ContainsAllTables(t *testing.T) {
	schema, err := SchemaSQL()
	if err != nil {
		t.Fatalf("SchemaSQL failed: %v", err)
	}

	for _, table := range []string{"channels", "channel_stats", "videos", "video_stats", "keywords"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema is missing table %s", table)
		}
	}
	if strings.Contains(schema, "DROP TABLE") {
		t.Error("schema should only contain up migrations")
	}
}
