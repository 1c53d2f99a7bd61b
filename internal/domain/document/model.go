package document

// Category classifies a document
type Category string

const (
	CategoryProposal Category = "proposal"
	CategoryReport   Category = "report"
	CategoryBudget   Category = "budget"
	CategoryContract Category = "contract"
	CategoryOther    Category = "other"
)

// Categories lists every category in enumeration order.
var Categories = []Category{CategoryProposal, CategoryReport, CategoryBudget, CategoryContract, CategoryOther}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Document is a file attached to a project.
type Document struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	ProjectID   string   `json:"projectId"`
	ProjectName string   `json:"projectName"`
	Size        int64    `json:"size"`
	Type        string   `json:"type"`
	UploadedBy  string   `json:"uploadedBy"`
	UploadedAt  string   `json:"uploadedAt"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
}

// Upload describes a new document. Content is optional; without it only the
// metadata is recorded.
type Upload struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	ProjectID   string   `json:"projectId"`
	ProjectName string   `json:"projectName"`
	Size        int64    `json:"size"`
	Type        string   `json:"type"`
	UploadedBy  string   `json:"uploadedBy"`
	Description string   `json:"description,omitempty"`
	Content     []byte   `json:"-"`
}

// Link is the outcome of a download: the document and where to fetch it.
type Link struct {
	Document Document `json:"document"`
	URL      string   `json:"url"`
}

// PlaceholderURL is recorded when no content was stored.
const PlaceholderURL = "#"
