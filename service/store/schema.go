package store

// Table names shared by every backend.
const (
	// TableCounters holds one sequence counter row per scope+year.
	TableCounters = "sequence_counters"

	// TableWorkOrders holds the durable work-order records; identifier
	// uniqueness is verified against this table, never against the counter.
	TableWorkOrders = "work_orders"

	// TableSettings holds opaque per-scope configuration such as the
	// artifact root path and a custom identifier prefix.
	TableSettings = "settings"
)

// UniqueKeys declares the unique key columns per table. Backends use the
// declared columns to build the duplicate-detection key for Insert and the
// record key for lookups.
func UniqueKeys() map[string][]string {
	return map[string][]string{
		TableCounters:   {"scope", "year"},
		TableWorkOrders: {"identifier"},
		TableSettings:   {"scope", "name"},
	}
}
