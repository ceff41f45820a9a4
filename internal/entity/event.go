package entity

import "time"

type MaterialEventType string

const (
	MaterialCreated    MaterialEventType = "created"
	MaterialDeleted    MaterialEventType = "deleted"
	MaterialViewed     MaterialEventType = "viewed"
	MaterialDownloaded MaterialEventType = "downloaded"
)

type MaterialEvent struct {
	EventID      string            `json:"event_id" msgpack:"event_id"`
	Type         MaterialEventType `json:"type" msgpack:"type"`
	MaterialID   string            `json:"material_id" msgpack:"material_id"`
	University   University        `json:"university" msgpack:"university"`
	MaterialType MaterialType      `json:"material_type" msgpack:"material_type"`
	OccurredAt   time.Time         `json:"occurred_at" msgpack:"occurred_at"`
}

func NewMaterialEvent(eventType MaterialEventType, material *Material, eventID string, at time.Time) *MaterialEvent {
	return &MaterialEvent{
		EventID:      eventID,
		Type:         eventType,
		MaterialID:   material.ID,
		University:   material.University,
		MaterialType: material.Type(),
		OccurredAt:   at,
	}
}
