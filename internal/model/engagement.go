package model

// Favorite 用户收藏的资源
type Favorite struct {
	RowBase
	UserID     uint      `gorm:"uniqueIndex:idx_user_favorite;not null" json:"userId"`
	ResourceID string    `gorm:"uniqueIndex:idx_user_favorite;type:varchar(36);not null" json:"resourceId"`
	Resource   *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Pin 用户置顶的资源
type Pin struct {
	RowBase
	UserID     uint      `gorm:"uniqueIndex:idx_user_pin;not null" json:"userId"`
	ResourceID string    `gorm:"uniqueIndex:idx_user_pin;type:varchar(36);not null" json:"resourceId"`
	Resource   *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (Pin) TableName() string {
	return "pins"
}
