package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// OrderByUpdatedDesc is the default ordering of notes: most recently modified first.
func OrderByUpdatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("notes.updated_at DESC").Order("notes.id DESC")
}

func OrderByActionTimeDesc(db *gorm.DB) *gorm.DB {
	return db.Order("action_time DESC")
}
