package db

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseQueryFile(t *testing.T) map[string]string {
	t.Helper()
	data, err := os.ReadFile("query.sql")
	if err != nil {
		t.Fatal(err)
	}

	queries := make(map[string]string)
	for _, block := range strings.Split(string(data), "-- name: ")[1:] {
		name, _, _ := strings.Cut(block, " ")
		queries[name] = strings.TrimSuffix(strings.TrimSpace("-- name: "+block), ";")
	}
	return queries
}

func TestQueriesMatchQueryFile(t *testing.T) {
	expected := parseQueryFile(t)
	got := map[string]string{
		"CreateRun":      createRun,
		"DeleteOverride": deleteOverride,
		"ListOverrides":  listOverrides,
		"ListRuns":       listRuns,
		"UpsertOverride": upsertOverride,
	}
	for name, query := range got {
		got[name] = strings.TrimSpace(query)
	}

	diff := cmp.Diff(expected, got)
	if diff != "" {
		t.Fatal(diff)
	}
}
