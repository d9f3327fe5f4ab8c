package models

// ReviewPatch is a partial update of the mutable review fields. A nil field is
// absent and leaves the stored value untouched. Every partial-update caller
// (HTTP, tools) goes through this one type instead of rebuilding a field list.
type ReviewPatch struct {
	Reviewer             *string `json:"reviewer,omitempty"`
	ArchitectureOverview *string `json:"architectureOverview,omitempty"`
	ReviewDate           *string `json:"reviewDate,omitempty"`
	CompleteDate         *string `json:"completeDate,omitempty"`
	ReviewCompleted      *bool   `json:"reviewCompleted,omitempty"`
	ReviewResultLocation *string `json:"reviewResultLocation,omitempty"`
}

// PatchFieldOrder fixes the order in which patch fields are applied and in
// which update expressions are rendered.
var PatchFieldOrder = []string{
	"reviewer",
	"architectureOverview",
	"reviewDate",
	"completeDate",
	"reviewCompleted",
	"reviewResultLocation",
}

// IsEmpty reports whether the patch names no fields at all.
func (p ReviewPatch) IsEmpty() bool {
	return p.Reviewer == nil &&
		p.ArchitectureOverview == nil &&
		p.ReviewDate == nil &&
		p.CompleteDate == nil &&
		p.ReviewCompleted == nil &&
		p.ReviewResultLocation == nil
}

// Fields returns the present fields by attribute name.
func (p ReviewPatch) Fields() map[string]any {
	out := make(map[string]any)
	if p.Reviewer != nil {
		out["reviewer"] = *p.Reviewer
	}
	if p.ArchitectureOverview != nil {
		out["architectureOverview"] = *p.ArchitectureOverview
	}
	if p.ReviewDate != nil {
		out["reviewDate"] = *p.ReviewDate
	}
	if p.CompleteDate != nil {
		out["completeDate"] = *p.CompleteDate
	}
	if p.ReviewCompleted != nil {
		out["reviewCompleted"] = *p.ReviewCompleted
	}
	if p.ReviewResultLocation != nil {
		out["reviewResultLocation"] = *p.ReviewResultLocation
	}
	return out
}

// ApplyTo merges the present fields into the record.
func (p ReviewPatch) ApplyTo(doc *DocumentMetadata) {
	if doc == nil {
		return
	}
	if p.Reviewer != nil {
		doc.Reviewer = *p.Reviewer
	}
	if p.ArchitectureOverview != nil {
		doc.ArchitectureOverview = *p.ArchitectureOverview
	}
	if p.ReviewDate != nil {
		doc.ReviewDate = *p.ReviewDate
	}
	if p.CompleteDate != nil {
		doc.CompleteDate = *p.CompleteDate
	}
	if p.ReviewCompleted != nil {
		doc.ReviewCompleted = *p.ReviewCompleted
	}
	if p.ReviewResultLocation != nil {
		doc.ReviewResultLocation = *p.ReviewResultLocation
	}
}
