package service

import (
	"context"
	"strings"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
)

type CreateMeetingRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Agenda      string    `json:"agenda" binding:"max=5000"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Location    string    `json:"location" binding:"max=255"`
	MeetingURL  string    `json:"meetingUrl" binding:"omitempty,url,max=512"`
	AttendeeIDs []uint    `json:"attendeeIds"`
}

func (r CreateMeetingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return util.BadRequestf("endTime must be after startTime")
	}
	return nil
}

// UpdateMeetingRequest AttendeeIDs 不为 nil 时整体替换参会人
type UpdateMeetingRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Agenda      *string    `json:"agenda" binding:"omitempty,max=5000"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	MeetingURL  *string    `json:"meetingUrl" binding:"omitempty,max=512"`
	AttendeeIDs []uint     `json:"attendeeIds"`
}

type CompleteMeetingRequest struct {
	Notes string `json:"notes" binding:"max=10000"`
}

type MeetingService struct {
	projectAccess
	Repo repository.MeetingRepository
	Now  func() time.Time
}

func NewMeetingService(repo repository.MeetingRepository, projects repository.ProjectRepository) *MeetingService {
	return &MeetingService{
		projectAccess: projectAccess{projects: projects},
		Repo:          repo,
		Now:           time.Now,
	}
}

// Create 组织者自动加入参会人
func (s *MeetingService) Create(ctx context.Context, identity model.Identity, projectID string, req CreateMeetingRequest) (*model.Meeting, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	project, err := s.member(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}
	attendees, err := buildAttendees(project, identity.UserID, req.AttendeeIDs)
	if err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		ProjectID:   projectID,
		OrganizerID: identity.UserID,
		Title:       strings.TrimSpace(req.Title),
		Agenda:      req.Agenda,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		MeetingURL:  req.MeetingURL,
		Status:      model.MeetingScheduled,
		Attendees:   attendees,
	}
	if err := s.Repo.CreateWithAttendees(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// List upcoming 为 true 时只返回尚未开始且未取消的会议
func (s *MeetingService) List(ctx context.Context, identity model.Identity, projectID string, upcoming bool) ([]model.Meeting, error) {
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	var after *time.Time
	if upcoming {
		now := s.Now()
		after = &now
	}
	return s.Repo.ListByProject(ctx, projectID, after)
}

func (s *MeetingService) Get(ctx context.Context, identity model.Identity, id string) (*model.Meeting, error) {
	meeting, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, meeting.ProjectID); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) Update(ctx context.Context, identity model.Identity, id string, req UpdateMeetingRequest) (*model.Meeting, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	meeting, project, err := s.organized(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if meeting.Status != model.MeetingScheduled {
		return nil, util.BadRequestf("cannot edit a %s meeting", meeting.Status)
	}

	if req.Title != nil {
		meeting.Title = strings.TrimSpace(*req.Title)
	}
	if req.Agenda != nil {
		meeting.Agenda = *req.Agenda
	}
	if req.StartTime != nil {
		meeting.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		meeting.EndTime = *req.EndTime
	}
	if !meeting.EndTime.After(meeting.StartTime) {
		return nil, util.BadRequestf("endTime must be after startTime")
	}
	if req.Location != nil {
		meeting.Location = *req.Location
	}
	if req.MeetingURL != nil {
		meeting.MeetingURL = *req.MeetingURL
	}

	replace := req.AttendeeIDs != nil
	if replace {
		attendees, err := buildAttendees(project, meeting.OrganizerID, req.AttendeeIDs)
		if err != nil {
			return nil, err
		}
		meeting.Attendees = attendees
	}

	if err := s.Repo.UpdateWithAttendees(ctx, meeting, replace); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) Delete(ctx context.Context, identity model.Identity, id string) error {
	if _, _, err := s.organized(ctx, identity, id); err != nil {
		return err
	}
	return s.Repo.DeleteCascade(ctx, id)
}

func (s *MeetingService) Cancel(ctx context.Context, identity model.Identity, id string) (*model.Meeting, error) {
	return s.finish(ctx, identity, id, model.MeetingCancelled, nil)
}

func (s *MeetingService) Complete(ctx context.Context, identity model.Identity, id string, req CompleteMeetingRequest) (*model.Meeting, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.finish(ctx, identity, id, model.MeetingCompleted, &req.Notes)
}

// finish 只有 scheduled 状态的会议可以取消或结束
func (s *MeetingService) finish(ctx context.Context, identity model.Identity, id string, status model.MeetingStatus, notes *string) (*model.Meeting, error) {
	meeting, _, err := s.organized(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if meeting.Status != model.MeetingScheduled {
		return nil, util.BadRequestf("cannot move meeting from %s to %s", meeting.Status, status)
	}

	meeting.Status = status
	if notes != nil {
		meeting.Notes = *notes
	}
	if err := s.Repo.UpdateWithAttendees(ctx, meeting, false); err != nil {
		return nil, err
	}
	return meeting, nil
}

// organized 组织者或管理员才能修改会议
func (s *MeetingService) organized(ctx context.Context, identity model.Identity, id string) (*model.Meeting, *model.Project, error) {
	meeting, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.member(ctx, identity, meeting.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !identity.IsAdmin() && meeting.OrganizerID != identity.UserID {
		return nil, nil, util.BadRequestf("only the organizer can modify this meeting")
	}
	return meeting, project, nil
}

func (s *MeetingService) find(ctx context.Context, id string) (*model.Meeting, error) {
	meeting, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, util.NotFound("Meeting")
	}
	return meeting, nil
}

// buildAttendees 去重并校验参会人都是项目成员
func buildAttendees(project *model.Project, organizerID uint, userIDs []uint) ([]model.MeetingAttendee, error) {
	seen := map[uint]bool{}
	attendees := make([]model.MeetingAttendee, 0, len(userIDs)+1)
	for _, id := range append([]uint{organizerID}, userIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		if id != organizerID && !project.IsMember(id) {
			return nil, util.BadRequestf("attendee %d is not a member of this project", id)
		}
		attendees = append(attendees, model.MeetingAttendee{UserID: id})
	}
	return attendees, nil
}
