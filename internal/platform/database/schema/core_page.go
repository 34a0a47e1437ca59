package schema

// CorePageTable represents the 'core.page' table
type CorePageTable struct {
	Table         string
	ID            string
	ParentID      string
	Title         string
	Slug          string
	Description   string
	Status        string
	AgeMin        string
	AgeMax        string
	PDFKey        string
	CoverKey      string
	ThumbKey      string
	Width         string
	Height        string
	FileSize      string
	ViewCount     string
	DownloadCount string
	CreatedAt     string
	UpdatedAt     string
	SearchVector  string
}

// CorePage is the schema definition for core.page
var CorePage = CorePageTable{
	Table:         "core.page",
	ID:            "id",
	ParentID:      "parentid",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	Status:        "status",
	AgeMin:        "agemin",
	AgeMax:        "agemax",
	PDFKey:        "pdfkey",
	CoverKey:      "coverkey",
	ThumbKey:      "thumbkey",
	Width:         "width",
	Height:        "height",
	FileSize:      "filesize",
	ViewCount:     "viewcount",
	DownloadCount: "downloadcount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	SearchVector:  "searchvector",
}

func (t CorePageTable) Columns() []string {
	return []string{
		t.ID, t.ParentID, t.Title, t.Slug, t.Description, t.Status,
		t.AgeMin, t.AgeMax, t.PDFKey, t.CoverKey, t.ThumbKey,
		t.Width, t.Height, t.FileSize, t.ViewCount, t.DownloadCount,
		t.CreatedAt, t.UpdatedAt,
	}
}
