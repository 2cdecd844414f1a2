package model

// Folder 项目文档目录，ParentID 为空表示根目录
type Folder struct {
	UUIDBase
	ProjectID string  `gorm:"index;type:varchar(36);not null" json:"projectId"`
	ParentID  *string `gorm:"index;type:varchar(36)" json:"parentId"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	CreatorID uint    `gorm:"index" json:"creatorId"`
}

func (Folder) TableName() string {
	return "folders"
}

// Document 上传到对象存储中的项目文件
type Document struct {
	UUIDBase
	ProjectID  string  `gorm:"index;type:varchar(36);not null" json:"projectId"`
	FolderID   *string `gorm:"index;type:varchar(36)" json:"folderId"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	ObjectKey  string  `gorm:"size:512;not null" json:"-"`
	URL        string  `gorm:"size:512;not null" json:"url"`
	MimeType   string  `gorm:"size:100" json:"mimeType"`
	Size       int64   `gorm:"default:0" json:"size"`
	UploaderID uint    `gorm:"index" json:"uploaderId"`
}

func (Document) TableName() string {
	return "documents"
}
