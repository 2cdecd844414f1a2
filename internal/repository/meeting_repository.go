package repository

import (
	"context"
	"errors"
	"time"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MeetingRepository interface {
	CreateWithAttendees(ctx context.Context, meeting *model.Meeting) error
	UpdateWithAttendees(ctx context.Context, meeting *model.Meeting, replaceAttendees bool) error
	FindByID(ctx context.Context, id string) (*model.Meeting, error)
	ListByProject(ctx context.Context, projectID string, upcomingAfter *time.Time) ([]model.Meeting, error)
	DeleteCascade(ctx context.Context, id string) error
}

type GormMeetingRepository struct {
	DB *gorm.DB
}

var _ MeetingRepository = (*GormMeetingRepository)(nil)

func NewMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{DB: db}
}

func (r *GormMeetingRepository) CreateWithAttendees(ctx context.Context, meeting *model.Meeting) error {
	attendees := meeting.Attendees
	meeting.Attendees = nil

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meeting).Error; err != nil {
			return err
		}
		if err := createAttendees(tx, meeting.ID, attendees); err != nil {
			return err
		}
		meeting.Attendees = attendees
		return nil
	})
}

// UpdateWithAttendees replaceAttendees 为 true 时用 meeting.Attendees 替换参会人
func (r *GormMeetingRepository) UpdateWithAttendees(ctx context.Context, meeting *model.Meeting, replaceAttendees bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(meeting).Error; err != nil {
			return err
		}
		if !replaceAttendees {
			return nil
		}
		if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return err
		}
		for i := range meeting.Attendees {
			meeting.Attendees[i].ID = ""
		}
		return createAttendees(tx, meeting.ID, meeting.Attendees)
	})
}

func createAttendees(tx *gorm.DB, meetingID string, attendees []model.MeetingAttendee) error {
	if len(attendees) == 0 {
		return nil
	}
	for i := range attendees {
		attendees[i].MeetingID = meetingID
	}
	return tx.Create(&attendees).Error
}

func (r *GormMeetingRepository) FindByID(ctx context.Context, id string) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.DB.WithContext(ctx).Preload("Attendees").First(&meeting, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListByProject upcomingAfter 不为空时只返回该时间之后开始且未取消的会议
func (r *GormMeetingRepository) ListByProject(ctx context.Context, projectID string, upcomingAfter *time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	query := r.DB.WithContext(ctx).Where("project_id = ?", projectID)
	if upcomingAfter != nil {
		query = query.Where("start_time > ? AND status = ?", *upcomingAfter, model.MeetingScheduled)
	}
	err := query.
		Preload("Attendees").
		Order("start_time ASC").
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Meeting{}, "id = ?", id).Error
	})
}
