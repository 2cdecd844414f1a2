package model

// Category 内容库分类
// swagger:model Category
type Category struct {
	UUIDBase
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Category) TableName() string {
	return "categories"
}
