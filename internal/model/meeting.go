package model

import "time"

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// swagger:model Meeting
type Meeting struct {
	UUIDBase
	ProjectID   string            `gorm:"index;type:varchar(36);not null" json:"projectId"`
	OrganizerID uint              `gorm:"index" json:"organizerId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Agenda      string            `gorm:"type:text" json:"agenda"`
	StartTime   time.Time         `gorm:"index" json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	MeetingURL  string            `gorm:"size:512" json:"meetingUrl"`
	Location    string            `gorm:"size:255" json:"location"`
	Status      MeetingStatus     `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes"`
	Attendees   []MeetingAttendee `gorm:"foreignKey:MeetingID" json:"attendees"`
}

func (Meeting) TableName() string {
	return "meetings"
}

type MeetingAttendee struct {
	RowBase
	MeetingID string `gorm:"uniqueIndex:idx_meeting_attendee;type:varchar(36);not null" json:"meetingId"`
	UserID    uint   `gorm:"uniqueIndex:idx_meeting_attendee;not null" json:"userId"`
}

func (MeetingAttendee) TableName() string {
	return "meeting_attendees"
}
