package mapper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	table := ApplyOverrides(Table{"1": "1.2.3"}, []Override{{OldID: "1", NewID: "9.9.9"}})
	require.Equal(t, Table{"1": "9.9.9"}, table)

	table = ApplyOverrides(Table{"1": "1.2.3", "2": "2.1.1"}, []Override{
		{OldID: "3", NewID: "3.3.3"},
		{OldID: "2", NewID: "2.2.2"},
		{OldID: "2", NewID: "2.5.5"},
	})
	diff := cmp.Diff(Table{"1": "1.2.3", "2": "2.5.5", "3": "3.3.3"}, table)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, Table{"1": "x"}, ApplyOverrides(nil, []Override{{OldID: "1", NewID: "x"}}))
	require.Equal(t, Table{"1": "1.2.3"}, ApplyOverrides(Table{"1": "1.2.3"}, nil))
}

func TestApplyOverridesIdempotent(t *testing.T) {
	overrides := []Override{
		{OldID: "1", NewID: "9.9.9"},
		{OldID: "4", NewID: "4.1.1"},
	}
	once := ApplyOverrides(Table{"1": "1.2.3", "2": "2.1.1"}, overrides)
	snapshot := Table{}
	for k, v := range once {
		snapshot[k] = v
	}
	twice := ApplyOverrides(once, overrides)

	diff := cmp.Diff(snapshot, twice)
	if diff != "" {
		t.Fatal(diff)
	}
}
