package models

import (
	"fmt"
	"time"
)

const (
	LeadStatusNew        = "New"
	LeadStatusContacted  = "Contacted"
	LeadStatusInProgress = "In Progress"
	LeadStatusConverted  = "Converted"
	LeadStatusClosed     = "Closed"
)

var leadStatuses = map[string]bool{
	LeadStatusNew:        true,
	LeadStatusContacted:  true,
	LeadStatusInProgress: true,
	LeadStatusConverted:  true,
	LeadStatusClosed:     true,
}

// Lead is an enquiry submitted through the public contact form.
type Lead struct {
	ID                string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Name              string    `json:"name" bson:"name" gorm:"column:name;not null"`
	Phone             string    `json:"phone" bson:"phone" gorm:"column:phone;not null"`
	Email             *string   `json:"email" bson:"email" gorm:"column:email"`
	ServiceInterested string    `json:"service_interested" bson:"service_interested" gorm:"column:service_interested"`
	ProjectType       string    `json:"project_type" bson:"project_type" gorm:"column:project_type"`
	Message           *string   `json:"message" bson:"message" gorm:"column:message;type:text"`
	Status            string    `json:"status" bson:"status" gorm:"column:status;index;not null"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" gorm:"column:created_at;index;not null;autoCreateTime:false"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (Lead) TableName() string {
	return "leads"
}

func (l Lead) EntityID() string {
	return l.ID
}

type LeadCreate struct {
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Email             *string `json:"email"`
	ServiceInterested string  `json:"service_interested"`
	ProjectType       string  `json:"project_type"`
	Message           *string `json:"message"`
}

func (c LeadCreate) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if err := required("phone", c.Phone); err != nil {
		return err
	}
	if err := required("service_interested", c.ServiceInterested); err != nil {
		return err
	}
	if err := required("project_type", c.ProjectType); err != nil {
		return err
	}
	if c.Email != nil && *c.Email != "" {
		return validEmail(*c.Email)
	}
	return nil
}

func (c LeadCreate) Build(now time.Time) Lead {
	email := c.Email
	if email != nil && *email == "" {
		email = nil
	}
	return Lead{
		ID:                NewID(),
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             email,
		ServiceInterested: c.ServiceInterested,
		ProjectType:       c.ProjectType,
		Message:           c.Message,
		Status:            LeadStatusNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

type LeadUpdate struct {
	Status *string `json:"status"`
}

func (u LeadUpdate) Validate() error {
	if u.Status != nil && !leadStatuses[*u.Status] {
		return fmt.Errorf("unknown lead status %q", *u.Status)
	}
	return nil
}

func (u LeadUpdate) Apply(l *Lead, now time.Time) {
	if u.Status != nil {
		l.Status = *u.Status
	}
	l.UpdatedAt = now
}
