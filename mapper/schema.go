package mapper

// ColumnType is the store-agnostic type of a persisted column. The store
// maps it to the SQL type of its dialect.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnBytes
	ColumnInt
	ColumnBool
)

// Column describes one persisted field of the entry row.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	// Default is a literal default value, empty when none.
	Default string
}

// Index declares a secondary index. Columns may carry an ordering suffix
// ("last_access_time DESC").
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Schema is the stable column layout the store must honor for persisted
// cache entries.
type Schema struct {
	Table      string
	Columns    []Column
	PrimaryKey []string
	Indexes    []Index
}

// Schema declares the layout for the mapper's configuration. The primary key
// is the entry key, composite with version when history is retained.
// Secondary indexes cover the scan paths: type tag lookups, expiration
// scans, eviction ranking, version history and tombstone filtering.
func (m *EntryMapper[T]) Schema() Schema {
	table := m.cfg.Table

	pk := []string{"key"}
	if m.cfg.RetainHistory {
		pk = []string{"key", "version"}
	}

	return Schema{
		Table: table,
		Columns: []Column{
			{Name: "key", Type: ColumnText},
			{Name: "type_tag", Type: ColumnText},
			{Name: "value", Type: ColumnBytes},
			{Name: "size", Type: ColumnInt, Default: "0"},
			{Name: "absolute_expiration", Type: ColumnInt, Nullable: true},
			{Name: "tags", Type: ColumnText, Nullable: true},
			{Name: "metadata", Type: ColumnText, Nullable: true},
			{Name: "priority", Type: ColumnInt, Default: "0"},
			{Name: "access_count", Type: ColumnInt, Default: "0"},
			{Name: "last_access_time", Type: ColumnInt, Nullable: true},
			{Name: "created_time", Type: ColumnInt},
			{Name: "last_write_time", Type: ColumnInt},
			{Name: "version", Type: ColumnInt, Default: "1"},
			{Name: "is_deleted", Type: ColumnBool, Default: "false"},
		},
		PrimaryKey: pk,
		Indexes: []Index{
			{Name: "idx_" + table + "_type_tag", Columns: []string{"type_tag"}},
			{Name: "idx_" + table + "_absolute_expiration", Columns: []string{"absolute_expiration"}},
			{Name: "idx_" + table + "_eviction", Columns: []string{"priority DESC", "last_access_time DESC"}},
			{Name: "idx_" + table + "_version", Columns: []string{"version DESC"}},
			{Name: "idx_" + table + "_is_deleted", Columns: []string{"is_deleted"}},
		},
	}
}
