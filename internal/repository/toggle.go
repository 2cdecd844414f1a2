package repository

import (
	"context"

	"gorm.io/gorm"
)

// toggle 在一个事务内：命中唯一键的行存在则物理删除，不存在则创建。
// 返回 true 表示本次是新增。
func toggle[T any](ctx context.Context, db *gorm.DB, conds map[string]interface{}, row *T) (bool, error) {
	added := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(conds).Delete(new(T))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(row).Error
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
