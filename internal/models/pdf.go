// internal/models/pdf.go
package models

// PDF is the metadata record of a document hosted on the remote asset store.
// CloudinaryID keeps the original field name whichever storage driver is active.
type PDF struct {
	BaseModel
	URL          string `json:"url" gorm:"size:1024;not null"`
	CloudinaryID string `json:"cloudinaryId" gorm:"column:cloudinary_id;size:255;not null;index"`
}

func (PDF) TableName() string {
	return "pdfs"
}
