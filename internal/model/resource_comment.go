package model

// ResourceComment 资源下的一级评论
type ResourceComment struct {
	UUIDBase
	ResourceID string         `gorm:"index;type:varchar(36);not null" json:"resourceId"`
	UserID     uint           `gorm:"index" json:"userId"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Replies    []CommentReply `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
}

func (ResourceComment) TableName() string {
	return "resource_comments"
}

// CommentReply 评论下的回复
type CommentReply struct {
	UUIDBase
	CommentID string `gorm:"index;type:varchar(36);not null" json:"commentId"`
	UserID    uint   `gorm:"index" json:"userId"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string `gorm:"type:text;not null" json:"content"`
}

func (CommentReply) TableName() string {
	return "comment_replies"
}
