package schema

// Wikipedia returns the policy for MediaWiki page revision history
// (stub-meta-history) dumps.
func Wikipedia() *Policy {
	return MustNew(Config{
		Record:     "page",
		Containers: []string{"revision", "contributor"},
		Fields: []Field{
			{Container: "page", Tag: "title"},
			{Container: "page", Tag: "ns"},
			{Container: "page", Tag: "id"},
			{Container: "revision", Tag: "id"},
			{Container: "revision", Tag: "timestamp"},
			{Container: "contributor", Tag: "id"},
			{Container: "contributor", Tag: "username"},
			{Container: "contributor", Tag: "ip"},
		},
	})
}
