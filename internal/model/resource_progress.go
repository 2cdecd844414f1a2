package model

import (
	"time"
)

// ResourceProgress 用户对资源的累计学习进度
// swagger:model ResourceProgress
type ResourceProgress struct {
	UUIDBase
	UserID         uint       `gorm:"uniqueIndex:idx_progress_user_resource;not null" json:"userId"`
	ResourceID     string     `gorm:"uniqueIndex:idx_progress_user_resource;type:varchar(36);not null" json:"resourceId"`
	Percentage     int        `gorm:"default:0" json:"percentage"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	CompletedAt    *time.Time `json:"completedAt"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
}

func (ResourceProgress) TableName() string {
	return "resource_progress"
}

// Certificate 完成证书，每个 (user, resource) 最多一张
// swagger:model Certificate
type Certificate struct {
	UUIDBase
	UserID            uint      `gorm:"uniqueIndex:idx_certificate_user_resource;not null" json:"userId"`
	ResourceID        string    `gorm:"uniqueIndex:idx_certificate_user_resource;type:varchar(36);not null" json:"resourceId"`
	Resource          *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	CertificateNumber string    `gorm:"size:64;uniqueIndex;not null" json:"certificateNumber"`
	IssuedAt          time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
