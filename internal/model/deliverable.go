package model

import "time"

type DeliverableStatus string

const (
	DeliverablePending           DeliverableStatus = "pending"
	DeliverableInProgress        DeliverableStatus = "in_progress"
	DeliverableSubmitted         DeliverableStatus = "submitted"
	DeliverableApproved          DeliverableStatus = "approved"
	DeliverableRevisionRequested DeliverableStatus = "revision_requested"
)

// Deliverable 项目交付物，走 提交审核 -> 通过 / 打回修改 的流程
// swagger:model Deliverable
type Deliverable struct {
	UUIDBase
	ProjectID     string                  `gorm:"index;type:varchar(36);not null" json:"projectId"`
	Title         string                  `gorm:"size:255;not null" json:"title"`
	Description   string                  `gorm:"type:text" json:"description"`
	DueDate       *time.Time              `json:"dueDate"`
	Status        DeliverableStatus       `gorm:"size:30;default:'pending'" json:"status"`
	Feedback      string                  `gorm:"type:text" json:"feedback"`
	RevisionCount int                     `gorm:"default:0" json:"revisionCount"`
	SubmittedAt   *time.Time              `json:"submittedAt"`
	ApprovedAt    *time.Time              `json:"approvedAt"`
	Attachments   []DeliverableAttachment `gorm:"foreignKey:DeliverableID" json:"attachments"`
}

func (Deliverable) TableName() string {
	return "deliverables"
}

type DeliverableAttachment struct {
	UUIDBase
	DeliverableID string `gorm:"index;type:varchar(36);not null" json:"deliverableId"`
	FileName      string `gorm:"size:255;not null" json:"fileName"`
	URL           string `gorm:"size:512;not null" json:"url"`
	Size          int64  `gorm:"default:0" json:"size"`
}

func (DeliverableAttachment) TableName() string {
	return "deliverable_attachments"
}
