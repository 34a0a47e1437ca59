package schema

// PageCategoryTable represents the 'core.pagecategory' table
type PageCategoryTable struct {
	Table      string
	PageID     string
	CategoryID string
}

// PageCategory is the schema definition for core.pagecategory
var PageCategory = PageCategoryTable{
	Table:      "core.pagecategory",
	PageID:     "pageid",
	CategoryID: "categoryid",
}
