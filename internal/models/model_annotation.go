package models

import (
	"time"

	"gorm.io/datatypes"
)

// Annotation is a JSON mapping attached to a content object under a namespace.
// The content object itself lives elsewhere; ObjectID is opaque here.
type Annotation struct {
	ID        string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ObjectID  string         `gorm:"column:object_id;type:varchar(255);not null;uniqueIndex:ux_object_annotation_object_namespace,priority:1" json:"object_id"`
	Namespace string         `gorm:"column:namespace;type:varchar(128);not null;uniqueIndex:ux_object_annotation_object_namespace,priority:2" json:"namespace"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null;default:'{}'" json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Annotation) TableName() string {
	return "object_annotation"
}

// IsEmpty reports whether nothing has been stored in the mapping yet.
func (a *Annotation) IsEmpty() bool {
	if a == nil {
		return true
	}
	switch string(a.Data) {
	case "", "{}", "null":
		return true
	}
	return false
}
