package model

type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionLove       ReactionType = "love"
	ReactionInsightful ReactionType = "insightful"
	ReactionCelebrate  ReactionType = "celebrate"
	ReactionCurious    ReactionType = "curious"
)

var ReactionTypes = []ReactionType{ReactionLike, ReactionLove, ReactionInsightful, ReactionCelebrate, ReactionCurious}

type CommentReaction struct {
	RowBase
	UserID    uint         `gorm:"uniqueIndex:idx_comment_reaction;not null" json:"userId"`
	CommentID string       `gorm:"uniqueIndex:idx_comment_reaction;type:varchar(36);not null" json:"commentId"`
	Type      ReactionType `gorm:"uniqueIndex:idx_comment_reaction;size:20;not null" json:"type"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}

type ReplyReaction struct {
	RowBase
	UserID  uint         `gorm:"uniqueIndex:idx_reply_reaction;not null" json:"userId"`
	ReplyID string       `gorm:"uniqueIndex:idx_reply_reaction;type:varchar(36);not null" json:"replyId"`
	Type    ReactionType `gorm:"uniqueIndex:idx_reply_reaction;size:20;not null" json:"type"`
}

func (ReplyReaction) TableName() string {
	return "reply_reactions"
}

// ReactionSummary 某条评论/回复的表情统计，Reacted 表示当前用户是否点过
type ReactionSummary struct {
	Type    ReactionType `json:"type"`
	Count   int64        `json:"count"`
	Reacted bool         `json:"reacted"`
}
