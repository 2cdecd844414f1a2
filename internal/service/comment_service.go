package service

import (
	"context"
	"errors"
	"strings"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
	"freelance_hub_backend/pkg/monitoring"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type ReactionRequest struct {
	Type model.ReactionType `json:"type" binding:"required,oneof=like love insightful celebrate curious"`
}

// ToggleReactionRequest 通用表情接口，commentId 和 replyId 必须且只能给一个
type ToggleReactionRequest struct {
	CommentID string             `json:"commentId"`
	ReplyID   string             `json:"replyId"`
	Type      model.ReactionType `json:"type" binding:"required,oneof=like love insightful celebrate curious"`
}

func (r ToggleReactionRequest) Validate() error {
	hasComment := strings.TrimSpace(r.CommentID) != ""
	hasReply := strings.TrimSpace(r.ReplyID) != ""
	if hasComment && hasReply {
		return errors.New("specify either commentId or replyId, not both")
	}
	if !hasComment && !hasReply {
		return errors.New("one of commentId or replyId is required")
	}
	return nil
}

type ReactionResult struct {
	Added     bool                    `json:"added"`
	Type      model.ReactionType      `json:"type"`
	Reactions []model.ReactionSummary `json:"reactions"`
}

type ReplyView struct {
	model.CommentReply
	Reactions []model.ReactionSummary `json:"reactions"`
}

type CommentView struct {
	model.ResourceComment
	Replies   []ReplyView             `json:"replies"`
	Reactions []model.ReactionSummary `json:"reactions"`
}

type CommentService struct {
	Repo      repository.CommentRepository
	Resources repository.ResourceRepository
}

func NewCommentService(repo repository.CommentRepository, resources repository.ResourceRepository) *CommentService {
	return &CommentService{Repo: repo, Resources: resources}
}

// ListComments 评论带回复和表情统计，Reacted 针对当前用户
func (s *CommentService) ListComments(ctx context.Context, identity model.Identity, resourceID string, p util.Pagination) ([]CommentView, int64, error) {
	if err := s.ensureResource(ctx, identity, resourceID); err != nil {
		return nil, 0, err
	}
	comments, total, err := s.Repo.ListComments(ctx, resourceID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, err
	}

	commentIDs := make([]string, 0, len(comments))
	var replyIDs []string
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		for _, r := range c.Replies {
			replyIDs = append(replyIDs, r.ID)
		}
	}
	commentReactions, err := s.Repo.CommentReactionSummaries(ctx, commentIDs, identity.UserID)
	if err != nil {
		return nil, 0, err
	}
	replyReactions, err := s.Repo.ReplyReactionSummaries(ctx, replyIDs, identity.UserID)
	if err != nil {
		return nil, 0, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		replies := make([]ReplyView, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, ReplyView{CommentReply: r, Reactions: nonNil(replyReactions[r.ID])})
		}
		c.Replies = nil
		views = append(views, CommentView{
			ResourceComment: c,
			Replies:         replies,
			Reactions:       nonNil(commentReactions[c.ID]),
		})
	}
	return views, total, nil
}

func (s *CommentService) CreateComment(ctx context.Context, identity model.Identity, resourceID string, req CommentRequest) (*model.ResourceComment, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureResource(ctx, identity, resourceID); err != nil {
		return nil, err
	}
	comment := &model.ResourceComment{
		ResourceID: resourceID,
		UserID:     identity.UserID,
		Content:    strings.TrimSpace(req.Content),
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.Repo.FindComment(ctx, comment.ID)
}

// UpdateComment 只有作者能修改
func (s *CommentService) UpdateComment(ctx context.Context, identity model.Identity, id string, req CommentRequest) (*model.ResourceComment, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	comment, err := s.Repo.FindComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, util.NotFound("Comment")
	}
	if comment.UserID != identity.UserID {
		return nil, util.BadRequestf("you can only edit your own comments")
	}
	content := strings.TrimSpace(req.Content)
	if err := s.Repo.UpdateCommentContent(ctx, id, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

// DeleteComment 作者或管理员可以删除，回复和表情一并删除
func (s *CommentService) DeleteComment(ctx context.Context, identity model.Identity, id string) error {
	comment, err := s.Repo.FindComment(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return util.NotFound("Comment")
	}
	if comment.UserID != identity.UserID && !identity.IsAdmin() {
		return util.BadRequestf("you can only delete your own comments")
	}
	return s.Repo.DeleteCommentCascade(ctx, id)
}

func (s *CommentService) CreateReply(ctx context.Context, identity model.Identity, commentID string, req CommentRequest) (*model.CommentReply, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	comment, err := s.Repo.FindComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, util.NotFound("Comment")
	}
	reply := &model.CommentReply{
		CommentID: commentID,
		UserID:    identity.UserID,
		Content:   strings.TrimSpace(req.Content),
	}
	if err := s.Repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return s.Repo.FindReply(ctx, reply.ID)
}

func (s *CommentService) UpdateReply(ctx context.Context, identity model.Identity, id string, req CommentRequest) (*model.CommentReply, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	reply, err := s.Repo.FindReply(ctx, id)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, util.NotFound("Reply")
	}
	if reply.UserID != identity.UserID {
		return nil, util.BadRequestf("you can only edit your own replies")
	}
	content := strings.TrimSpace(req.Content)
	if err := s.Repo.UpdateReplyContent(ctx, id, content); err != nil {
		return nil, err
	}
	reply.Content = content
	return reply, nil
}

func (s *CommentService) DeleteReply(ctx context.Context, identity model.Identity, id string) error {
	reply, err := s.Repo.FindReply(ctx, id)
	if err != nil {
		return err
	}
	if reply == nil {
		return util.NotFound("Reply")
	}
	if reply.UserID != identity.UserID && !identity.IsAdmin() {
		return util.BadRequestf("you can only delete your own replies")
	}
	return s.Repo.DeleteReplyCascade(ctx, id)
}

func (s *CommentService) ToggleCommentReaction(ctx context.Context, identity model.Identity, commentID string, req ReactionRequest) (*ReactionResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.toggleCommentReaction(ctx, identity, commentID, req.Type)
}

func (s *CommentService) ToggleReplyReaction(ctx context.Context, identity model.Identity, replyID string, req ReactionRequest) (*ReactionResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.toggleReplyReaction(ctx, identity, replyID, req.Type)
}

// ToggleReaction 通用入口，按目标分发到评论表情或回复表情
func (s *CommentService) ToggleReaction(ctx context.Context, identity model.Identity, req ToggleReactionRequest) (*ReactionResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.CommentID != "" {
		return s.toggleCommentReaction(ctx, identity, req.CommentID, req.Type)
	}
	return s.toggleReplyReaction(ctx, identity, req.ReplyID, req.Type)
}

func (s *CommentService) toggleCommentReaction(ctx context.Context, identity model.Identity, commentID string, reactionType model.ReactionType) (*ReactionResult, error) {
	comment, err := s.Repo.FindComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, util.NotFound("Comment")
	}
	added, err := s.Repo.ToggleCommentReaction(ctx, identity.UserID, commentID, reactionType)
	if err != nil {
		return nil, err
	}
	monitoring.RecordToggle("comment_reaction", added)

	summaries, err := s.Repo.CommentReactionSummaries(ctx, []string{commentID}, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &ReactionResult{Added: added, Type: reactionType, Reactions: nonNil(summaries[commentID])}, nil
}

func (s *CommentService) toggleReplyReaction(ctx context.Context, identity model.Identity, replyID string, reactionType model.ReactionType) (*ReactionResult, error) {
	reply, err := s.Repo.FindReply(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, util.NotFound("Reply")
	}
	added, err := s.Repo.ToggleReplyReaction(ctx, identity.UserID, replyID, reactionType)
	if err != nil {
		return nil, err
	}
	monitoring.RecordToggle("reply_reaction", added)

	summaries, err := s.Repo.ReplyReactionSummaries(ctx, []string{replyID}, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &ReactionResult{Added: added, Type: reactionType, Reactions: nonNil(summaries[replyID])}, nil
}

func (s *CommentService) ensureResource(ctx context.Context, identity model.Identity, resourceID string) error {
	_, err := findVisibleResource(ctx, s.Resources, identity, resourceID)
	return err
}

func nonNil(summaries []model.ReactionSummary) []model.ReactionSummary {
	if summaries == nil {
		return []model.ReactionSummary{}
	}
	return summaries
}
