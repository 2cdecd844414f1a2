package model

type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceVideo   ResourceType = "video"
	ResourcePDF     ResourceType = "pdf"
	ResourceCourse  ResourceType = "course"
)

// Resource 内容库中的一条资源（文章 / 课程单元）
// swagger:model Resource
type Resource struct {
	UUIDBase
	Title            string               `gorm:"size:255;not null" json:"title"`
	Summary          string               `gorm:"type:text" json:"summary"`
	Content          string               `gorm:"type:text" json:"content"`
	Type             ResourceType         `gorm:"size:20;not null;default:'article'" json:"type"`
	CategoryID       string               `gorm:"index;type:varchar(36)" json:"categoryId"`
	Category         *Category            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID         uint                 `gorm:"index" json:"authorId"`
	Author           *User                `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsPublished      bool                 `gorm:"default:false" json:"isPublished"`
	ViewCount        int                  `gorm:"default:0" json:"viewCount"`
	EstimatedMinutes int                  `gorm:"default:0" json:"estimatedMinutes"`
	Attachments      []ResourceAttachment `gorm:"foreignKey:ResourceID" json:"attachments"`
}

func (Resource) TableName() string {
	return "resources"
}

// ResourceAttachment 资源附件，和资源在同一事务中创建/替换
type ResourceAttachment struct {
	UUIDBase
	ResourceID string  `gorm:"index;type:varchar(36);not null" json:"resourceId"`
	FileName   string  `gorm:"size:255;not null" json:"fileName"`
	URL        string  `gorm:"size:512;not null" json:"url"`
	MimeType   string  `gorm:"size:100" json:"mimeType"`
	Size       int64   `gorm:"default:0" json:"size"`
	Thumbnail  string  `gorm:"size:512" json:"thumbnail,omitempty"`
	Duration   float64 `gorm:"default:0" json:"duration,omitempty"` // 视频时长（秒）
}

func (ResourceAttachment) TableName() string {
	return "resource_attachments"
}
