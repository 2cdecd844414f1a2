package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project 客户与自由职业者之间的项目，交付物/文档/看板/会议都挂在项目下
// swagger:model Project
type Project struct {
	UUIDBase
	Title        string        `gorm:"size:255;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	ClientID     uint          `gorm:"index;not null" json:"clientId"`
	FreelancerID *uint         `gorm:"index" json:"freelancerId"`
	Status       ProjectStatus `gorm:"size:20;default:'active'" json:"status"`
	Budget       float64       `gorm:"default:0" json:"budget"`
	DueDate      *time.Time    `json:"dueDate"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsMember(userID uint) bool {
	if p.ClientID == userID {
		return true
	}
	return p.FreelancerID != nil && *p.FreelancerID == userID
}

func (p *Project) IsFreelancer(userID uint) bool {
	return p.FreelancerID != nil && *p.FreelancerID == userID
}
