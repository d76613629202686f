package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLogEntryResponse struct {
	Id            uuid.UUID                `json:"id"`
	ActionTime    time.Time                `json:"action_time"`
	UserId        uuid.UUID                `json:"user_id"`
	ObjectType    string                   `json:"object_type"`
	ObjectId      string                   `json:"object_id"`
	ObjectRepr    string                   `json:"object_repr"`
	Action        string                   `json:"action"`
	ChangeMessage []map[string]interface{} `json:"change_message"`
}
