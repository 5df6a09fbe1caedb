package models

import "time"

// AdminUser is an account allowed to use the administrative endpoints.
type AdminUser struct {
	ID             string     `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Username       string     `json:"username" bson:"username" gorm:"column:username;uniqueIndex;not null"`
	HashedPassword string     `json:"-" bson:"hashed_password" gorm:"column:hashed_password;not null"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	LastLogin      *time.Time `json:"last_login" bson:"last_login" gorm:"column:last_login"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (u AdminUser) EntityID() string {
	return u.ID
}

// LoginHistory is one login attempt. Records are append-only.
type LoginHistory struct {
	ID        string    `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Username  string    `json:"username" bson:"username" gorm:"column:username;index;not null"`
	IPAddress string    `json:"ip_address,omitempty" bson:"ip_address" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent string    `json:"user_agent,omitempty" bson:"user_agent" gorm:"column:user_agent;type:text"`
	LoginTime time.Time `json:"login_time" bson:"login_time" gorm:"column:login_time;index;not null"`
	Success   bool      `json:"success" bson:"success" gorm:"column:success;not null"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}

func (h LoginHistory) EntityID() string {
	return h.ID
}
