package specification

import "gorm.io/gorm"

// ForObject selects the admin log entries of one object.
type ForObject struct {
	ObjectType string
	ObjectID   string
}

func (s ForObject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("object_type = ? AND object_id = ?", s.ObjectType, s.ObjectID)
}
