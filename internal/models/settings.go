package models

import "time"

// ContactFormSettings drives the option lists of the public contact form.
type ContactFormSettings struct {
	ID                 string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	ServiceOptions     []string  `json:"service_options" bson:"service_options" gorm:"column:service_options;serializer:json"`
	ProjectTypeOptions []string  `json:"project_type_options" bson:"project_type_options" gorm:"column:project_type_options;serializer:json"`
	AdminEmail         string    `json:"admin_email" bson:"admin_email" gorm:"column:admin_email"`
	WhatsappNumber     string    `json:"whatsapp_number" bson:"whatsapp_number" gorm:"column:whatsapp_number"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (ContactFormSettings) TableName() string {
	return "contact_form_settings"
}

func (s ContactFormSettings) EntityID() string {
	return s.ID
}

func DefaultContactFormSettings(now time.Time) ContactFormSettings {
	return ContactFormSettings{
		ID:                 NewID(),
		ServiceOptions:     []string{"Civil & Interior Work", "Agriculture Solutions", "Solar Equipment"},
		ProjectTypeOptions: []string{"Residential", "Commercial", "Agricultural", "Industrial"},
		AdminEmail:         "info@synergyindia.com",
		WhatsappNumber:     "918404861022",
		UpdatedAt:          now,
	}
}

type ContactFormSettingsUpdate struct {
	ServiceOptions     *[]string `json:"service_options"`
	ProjectTypeOptions *[]string `json:"project_type_options"`
	AdminEmail         *string   `json:"admin_email"`
	WhatsappNumber     *string   `json:"whatsapp_number"`
}

func (u ContactFormSettingsUpdate) Validate() error {
	if u.AdminEmail != nil {
		return validEmail(*u.AdminEmail)
	}
	return nil
}

func (u ContactFormSettingsUpdate) Apply(s *ContactFormSettings, now time.Time) {
	if u.ServiceOptions != nil {
		s.ServiceOptions = nonNil(*u.ServiceOptions)
	}
	if u.ProjectTypeOptions != nil {
		s.ProjectTypeOptions = nonNil(*u.ProjectTypeOptions)
	}
	if u.AdminEmail != nil {
		s.AdminEmail = *u.AdminEmail
	}
	if u.WhatsappNumber != nil {
		s.WhatsappNumber = *u.WhatsappNumber
	}
	s.UpdatedAt = now
}

// CTASettings configures the call-to-action buttons shown on service pages.
type CTASettings struct {
	ID               string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	WhatsappTemplate string    `json:"whatsapp_template" bson:"whatsapp_template" gorm:"column:whatsapp_template;type:text"`
	CallNumber       string    `json:"call_number" bson:"call_number" gorm:"column:call_number"`
	ContactPageLink  string    `json:"contact_page_link" bson:"contact_page_link" gorm:"column:contact_page_link"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (CTASettings) TableName() string {
	return "cta_settings"
}

func (s CTASettings) EntityID() string {
	return s.ID
}

func DefaultCTASettings(now time.Time) CTASettings {
	return CTASettings{
		ID:               NewID(),
		WhatsappTemplate: "Hello! I would like to know about {service_name} services.",
		CallNumber:       "+916123597570",
		ContactPageLink:  "/contact",
		UpdatedAt:        now,
	}
}

type CTASettingsUpdate struct {
	WhatsappTemplate *string `json:"whatsapp_template"`
	CallNumber       *string `json:"call_number"`
	ContactPageLink  *string `json:"contact_page_link"`
}

func (u CTASettingsUpdate) Validate() error {
	return nil
}

func (u CTASettingsUpdate) Apply(s *CTASettings, now time.Time) {
	if u.WhatsappTemplate != nil {
		s.WhatsappTemplate = *u.WhatsappTemplate
	}
	if u.CallNumber != nil {
		s.CallNumber = *u.CallNumber
	}
	if u.ContactPageLink != nil {
		s.ContactPageLink = *u.ContactPageLink
	}
	s.UpdatedAt = now
}

// GeneralSettings holds site-wide contact details and branding.
type GeneralSettings struct {
	ID            string            `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	SiteName      string            `json:"site_name" bson:"site_name" gorm:"column:site_name"`
	LogoURL       string            `json:"logo_url" bson:"logo_url" gorm:"column:logo_url"`
	OfficeAddress string            `json:"office_address" bson:"office_address" gorm:"column:office_address"`
	Phone         string            `json:"phone" bson:"phone" gorm:"column:phone"`
	Email         string            `json:"email" bson:"email" gorm:"column:email"`
	OfficeHours   string            `json:"office_hours" bson:"office_hours" gorm:"column:office_hours"`
	SocialMedia   map[string]string `json:"social_media" bson:"social_media" gorm:"column:social_media;serializer:json"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (GeneralSettings) TableName() string {
	return "general_settings"
}

func (s GeneralSettings) EntityID() string {
	return s.ID
}

func DefaultGeneralSettings(now time.Time) GeneralSettings {
	return GeneralSettings{
		ID:            NewID(),
		SiteName:      "SYNERGY INDIA",
		LogoURL:       "",
		OfficeAddress: "05, Chaudhary Market, Opposite Paras HMRI Hospital, Raja Bazar, Patna - 800014",
		Phone:         "+91-8404861022",
		Email:         "info@synergyindia.com",
		OfficeHours:   "Mon-Sat: 9 AM - 6 PM",
		SocialMedia: map[string]string{
			"facebook":  "",
			"instagram": "",
			"twitter":   "",
			"linkedin":  "",
		},
		UpdatedAt: now,
	}
}

type GeneralSettingsUpdate struct {
	SiteName      *string            `json:"site_name"`
	LogoURL       *string            `json:"logo_url"`
	OfficeAddress *string            `json:"office_address"`
	Phone         *string            `json:"phone"`
	Email         *string            `json:"email"`
	OfficeHours   *string            `json:"office_hours"`
	SocialMedia   *map[string]string `json:"social_media"`
}

func (u GeneralSettingsUpdate) Validate() error {
	if u.Email != nil {
		return validEmail(*u.Email)
	}
	return nil
}

func (u GeneralSettingsUpdate) Apply(s *GeneralSettings, now time.Time) {
	if u.SiteName != nil {
		s.SiteName = *u.SiteName
	}
	if u.LogoURL != nil {
		s.LogoURL = *u.LogoURL
	}
	if u.OfficeAddress != nil {
		s.OfficeAddress = *u.OfficeAddress
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.OfficeHours != nil {
		s.OfficeHours = *u.OfficeHours
	}
	if u.SocialMedia != nil {
		s.SocialMedia = *u.SocialMedia
	}
	s.UpdatedAt = now
}
