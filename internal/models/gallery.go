package models

import "time"

type GalleryImage struct {
	ID        string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	URL       string    `json:"url" bson:"url" gorm:"column:url;not null"`
	AltText   string    `json:"alt_text" bson:"alt_text" gorm:"column:alt_text"`
	Caption   string    `json:"caption" bson:"caption" gorm:"column:caption"`
	Category  string    `json:"category" bson:"category" gorm:"column:category;index"`
	Order     int       `json:"order" bson:"order" gorm:"column:order;not null;default:0"`
	IsActive  bool      `json:"is_active" bson:"is_active" gorm:"column:is_active;index"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (GalleryImage) TableName() string {
	return "gallery"
}

func (g GalleryImage) EntityID() string {
	return g.ID
}

// GalleryImageCreate carries the form fields sent alongside an uploaded image.
type GalleryImageCreate struct {
	AltText  string
	Caption  string
	Category string
	Order    int
	IsActive bool
}

func (c GalleryImageCreate) Validate() error {
	if err := required("alt_text", c.AltText); err != nil {
		return err
	}
	if err := required("caption", c.Caption); err != nil {
		return err
	}
	return required("category", c.Category)
}

func (c GalleryImageCreate) Build(url string, now time.Time) GalleryImage {
	return GalleryImage{
		ID:        NewID(),
		URL:       url,
		AltText:   c.AltText,
		Caption:   c.Caption,
		Category:  c.Category,
		Order:     c.Order,
		IsActive:  c.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type GalleryImageUpdate struct {
	AltText  *string `json:"alt_text"`
	Caption  *string `json:"caption"`
	Category *string `json:"category"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"is_active"`
}

func (u GalleryImageUpdate) Apply(g *GalleryImage, now time.Time) {
	if u.AltText != nil {
		g.AltText = *u.AltText
	}
	if u.Caption != nil {
		g.Caption = *u.Caption
	}
	if u.Category != nil {
		g.Category = *u.Category
	}
	if u.Order != nil {
		g.Order = *u.Order
	}
	if u.IsActive != nil {
		g.IsActive = *u.IsActive
	}
	g.UpdatedAt = now
}

// GalleryOrder is one entry of a reorder request.
type GalleryOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
