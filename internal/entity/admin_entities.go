package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdminActionFlag int

const (
	AdminActionAddition AdminActionFlag = 1
	AdminActionChange   AdminActionFlag = 2
	AdminActionDeletion AdminActionFlag = 3
)

func (f AdminActionFlag) String() string {
	switch f {
	case AdminActionAddition:
		return "addition"
	case AdminActionChange:
		return "change"
	case AdminActionDeletion:
		return "deletion"
	}
	return "unknown"
}

const AdminLogObjectReprMaxLength = 200

// AdminLogEntry records one add, change or delete performed through the admin console.
type AdminLogEntry struct {
	Id            uuid.UUID
	ActionTime    time.Time
	UserId        uuid.UUID
	ObjectType    string
	ObjectId      string
	ObjectRepr    string
	ActionFlag    AdminActionFlag
	ChangeMessage []map[string]interface{}
}

// NewAdminLogEntry builds an entry for obj, using its label as representation.
func NewAdminLogEntry(actor uuid.UUID, objectType, objectId string, obj interface{ String() string }, flag AdminActionFlag, message []map[string]interface{}) *AdminLogEntry {
	return &AdminLogEntry{
		Id:            uuid.New(),
		ActionTime:    Now(),
		UserId:        actor,
		ObjectType:    objectType,
		ObjectId:      objectId,
		ObjectRepr:    truncateRunes(obj.String(), AdminLogObjectReprMaxLength),
		ActionFlag:    flag,
		ChangeMessage: message,
	}
}
