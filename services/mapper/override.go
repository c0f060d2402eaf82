package mapper

// ApplyOverrides writes every override into table, replacing whatever the
// automatic mapping decided. Later overrides of the same old id win. New
// ids are trusted as is.
func ApplyOverrides(table Table, overrides []Override) Table {
	if table == nil {
		table = make(Table, len(overrides))
	}
	for _, o := range overrides {
		table[o.OldID] = o.NewID
	}
	return table
}
