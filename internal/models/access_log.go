package models

import (
	"time"
)

// AccessLog is one served HTTP request, persisted by the logging middleware.
type AccessLog struct {
	ID        string        `json:"id" bson:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp" gorm:"column:timestamp;index;not null"`
	Method    string        `json:"method" bson:"method" gorm:"column:method;type:varchar(10);not null"`
	Path      string        `json:"path" bson:"path" gorm:"column:path;type:text;not null"`
	Status    int           `json:"status" bson:"status" gorm:"column:status;not null;index"`
	Duration  time.Duration `json:"duration" bson:"duration" gorm:"column:duration"`
	ClientIP  string        `json:"client_ip" bson:"client_ip" gorm:"column:client_ip;type:varchar(45);not null"`
	UserAgent string        `json:"user_agent" bson:"user_agent" gorm:"column:user_agent;type:text"`
	BytesSent int           `json:"bytes_sent" bson:"bytes_sent" gorm:"column:bytes_sent;not null;default:0"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}

func (a AccessLog) EntityID() string {
	return a.ID
}
