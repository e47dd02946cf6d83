package project

// Wikipedia returns the revision table projection of a MediaWiki
// page: one row per revision, with the revision's first contributor.
func Wikipedia() Config {
	return Config{
		Repeat: "revision",
		Nested: "contributor",
		Columns: []Column{
			{Level: LevelRecord, Field: "title"},
			{Level: LevelRecord, Field: "ns"},
			{Level: LevelRecord, Field: "id", Header: "page_id"},
			{Level: LevelChild, Field: "id", Header: "rev_id"},
			{Level: LevelChild, Field: "timestamp"},
			{Level: LevelNested, Field: "id", Header: "user_id"},
			{Level: LevelNested, Field: "username"},
			{Level: LevelNested, Field: "ip"},
		},
	}
}
