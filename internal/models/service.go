package models

import "time"

// MaxServiceImages caps how many images a Service may reference.
const MaxServiceImages = 4

type Service struct {
	ID          string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Title       string    `json:"title" bson:"title" gorm:"column:title;not null"`
	ShortIntro  *string   `json:"short_intro" bson:"short_intro" gorm:"column:short_intro"`
	Overview    string    `json:"overview" bson:"overview" gorm:"column:overview;type:text"`
	SubServices []string  `json:"sub_services" bson:"sub_services" gorm:"column:sub_services;serializer:json"`
	Benefits    []string  `json:"benefits" bson:"benefits" gorm:"column:benefits;serializer:json"`
	CTAText     string    `json:"cta_text" bson:"cta_text" gorm:"column:cta_text"`
	Images      []string  `json:"images" bson:"images" gorm:"column:images;serializer:json"`
	IsActive    bool      `json:"is_active" bson:"is_active" gorm:"column:is_active;index"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (Service) TableName() string {
	return "services"
}

func (s Service) EntityID() string {
	return s.ID
}

type ServiceCreate struct {
	Title       string   `json:"title"`
	ShortIntro  *string  `json:"short_intro"`
	Overview    string   `json:"overview"`
	SubServices []string `json:"sub_services"`
	Benefits    []string `json:"benefits"`
	CTAText     string   `json:"cta_text"`
	IsActive    *bool    `json:"is_active"`
}

func (c ServiceCreate) Validate() error {
	if err := required("title", c.Title); err != nil {
		return err
	}
	if err := required("overview", c.Overview); err != nil {
		return err
	}
	return required("cta_text", c.CTAText)
}

// Build returns a new Service stamped with id and timestamps.
func (c ServiceCreate) Build(now time.Time) Service {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}
	return Service{
		ID:          NewID(),
		Title:       c.Title,
		ShortIntro:  c.ShortIntro,
		Overview:    c.Overview,
		SubServices: nonNil(c.SubServices),
		Benefits:    nonNil(c.Benefits),
		CTAText:     c.CTAText,
		Images:      []string{},
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ServiceUpdate struct {
	Title       *string   `json:"title"`
	ShortIntro  *string   `json:"short_intro"`
	Overview    *string   `json:"overview"`
	SubServices *[]string `json:"sub_services"`
	Benefits    *[]string `json:"benefits"`
	CTAText     *string   `json:"cta_text"`
	IsActive    *bool     `json:"is_active"`
}

// Apply copies the non-nil fields onto s and bumps updated_at.
func (u ServiceUpdate) Apply(s *Service, now time.Time) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.ShortIntro != nil {
		s.ShortIntro = u.ShortIntro
	}
	if u.Overview != nil {
		s.Overview = *u.Overview
	}
	if u.SubServices != nil {
		s.SubServices = nonNil(*u.SubServices)
	}
	if u.Benefits != nil {
		s.Benefits = nonNil(*u.Benefits)
	}
	if u.CTAText != nil {
		s.CTAText = *u.CTAText
	}
	if u.IsActive != nil {
		s.IsActive = *u.IsActive
	}
	s.UpdatedAt = now
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
