package schema

// PageTagTable represents the 'core.pagetag' table
type PageTagTable struct {
	Table  string
	PageID string
	TagID  string
}

// PageTag is the schema definition for core.pagetag
var PageTag = PageTagTable{
	Table:  "core.pagetag",
	PageID: "pageid",
	TagID:  "tagid",
}
