package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.ResourceComment) error
	FindComment(ctx context.Context, id string) (*model.ResourceComment, error)
	UpdateCommentContent(ctx context.Context, id, content string) error
	DeleteCommentCascade(ctx context.Context, id string) error
	ListComments(ctx context.Context, resourceID string, offset, limit int) ([]model.ResourceComment, int64, error)

	CreateReply(ctx context.Context, reply *model.CommentReply) error
	FindReply(ctx context.Context, id string) (*model.CommentReply, error)
	UpdateReplyContent(ctx context.Context, id, content string) error
	DeleteReplyCascade(ctx context.Context, id string) error

	ToggleCommentReaction(ctx context.Context, userID uint, commentID string, reactionType model.ReactionType) (bool, error)
	ToggleReplyReaction(ctx context.Context, userID uint, replyID string, reactionType model.ReactionType) (bool, error)
	CommentReactionSummaries(ctx context.Context, commentIDs []string, userID uint) (map[string][]model.ReactionSummary, error)
	ReplyReactionSummaries(ctx context.Context, replyIDs []string, userID uint) (map[string][]model.ReactionSummary, error)
}

type GormCommentRepository struct {
	DB *gorm.DB
}

var _ CommentRepository = (*GormCommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{DB: db}
}

func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *model.ResourceComment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormCommentRepository) FindComment(ctx context.Context, id string) (*model.ResourceComment, error) {
	var comment model.ResourceComment
	err := r.DB.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) UpdateCommentContent(ctx context.Context, id, content string) error {
	return r.DB.WithContext(ctx).Model(&model.ResourceComment{}).
		Where("id = ?", id).
		Update("content", content).
		Error
}

// DeleteCommentCascade 删除评论、评论下的回复以及两者上的表情
func (r *GormCommentRepository) DeleteCommentCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&model.CommentReply{}).Select("id").Where("comment_id = ?", id)
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&model.ReplyReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ResourceComment{}, "id = ?", id).Error
	})
}

// ListComments 一级评论按时间倒序分页，回复按时间正序全部带出
func (r *GormCommentRepository) ListComments(ctx context.Context, resourceID string, offset, limit int) ([]model.ResourceComment, int64, error) {
	var comments []model.ResourceComment
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.ResourceComment{}).Where("resource_id = ?", resourceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *GormCommentRepository) CreateReply(ctx context.Context, reply *model.CommentReply) error {
	return r.DB.WithContext(ctx).Create(reply).Error
}

func (r *GormCommentRepository) FindReply(ctx context.Context, id string) (*model.CommentReply, error) {
	var reply model.CommentReply
	err := r.DB.WithContext(ctx).Preload("User").First(&reply, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *GormCommentRepository) UpdateReplyContent(ctx context.Context, id, content string) error {
	return r.DB.WithContext(ctx).Model(&model.CommentReply{}).
		Where("id = ?", id).
		Update("content", content).
		Error
}

func (r *GormCommentRepository) DeleteReplyCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", id).Delete(&model.ReplyReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CommentReply{}, "id = ?", id).Error
	})
}

func (r *GormCommentRepository) ToggleCommentReaction(ctx context.Context, userID uint, commentID string, reactionType model.ReactionType) (bool, error) {
	return toggle(ctx, r.DB,
		map[string]interface{}{"user_id": userID, "comment_id": commentID, "type": reactionType},
		&model.CommentReaction{UserID: userID, CommentID: commentID, Type: reactionType},
	)
}

func (r *GormCommentRepository) ToggleReplyReaction(ctx context.Context, userID uint, replyID string, reactionType model.ReactionType) (bool, error) {
	return toggle(ctx, r.DB,
		map[string]interface{}{"user_id": userID, "reply_id": replyID, "type": reactionType},
		&model.ReplyReaction{UserID: userID, ReplyID: replyID, Type: reactionType},
	)
}

func (r *GormCommentRepository) CommentReactionSummaries(ctx context.Context, commentIDs []string, userID uint) (map[string][]model.ReactionSummary, error) {
	return r.summaries(ctx, &model.CommentReaction{}, "comment_id", commentIDs, userID)
}

func (r *GormCommentRepository) ReplyReactionSummaries(ctx context.Context, replyIDs []string, userID uint) (map[string][]model.ReactionSummary, error) {
	return r.summaries(ctx, &model.ReplyReaction{}, "reply_id", replyIDs, userID)
}

type reactionCount struct {
	TargetID string
	Type     model.ReactionType
	Count    int64
}

// summaries 按目标聚合各表情的数量，并标记当前用户点过哪些。
// 结果里只包含数量大于 0 的表情，顺序与 model.ReactionTypes 一致。
func (r *GormCommentRepository) summaries(ctx context.Context, table interface{}, column string, targetIDs []string, userID uint) (map[string][]model.ReactionSummary, error) {
	result := make(map[string][]model.ReactionSummary, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var counts []reactionCount
	err := r.DB.WithContext(ctx).Model(table).
		Select(column+" AS target_id, type, COUNT(*) AS count").
		Where(column+" IN ?", targetIDs).
		Group(column + ", type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var mine []reactionCount
	err = r.DB.WithContext(ctx).Model(table).
		Select(column+" AS target_id, type").
		Where(column+" IN ? AND user_id = ?", targetIDs, userID).
		Scan(&mine).Error
	if err != nil {
		return nil, err
	}

	reacted := make(map[string]bool, len(mine))
	for _, m := range mine {
		reacted[m.TargetID+"|"+string(m.Type)] = true
	}
	byTarget := make(map[string]map[model.ReactionType]int64)
	for _, c := range counts {
		if byTarget[c.TargetID] == nil {
			byTarget[c.TargetID] = make(map[model.ReactionType]int64)
		}
		byTarget[c.TargetID][c.Type] = c.Count
	}

	for _, id := range targetIDs {
		summaries := []model.ReactionSummary{}
		for _, t := range model.ReactionTypes {
			count := byTarget[id][t]
			if count == 0 {
				continue
			}
			summaries = append(summaries, model.ReactionSummary{
				Type:    t,
				Count:   count,
				Reacted: reacted[id+"|"+string(t)],
			})
		}
		result[id] = summaries
	}
	return result, nil
}
