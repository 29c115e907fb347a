package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base contains common fields for all models
type Base struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// Meta exposes the common fields of any model embedding Base.
func (b *Base) Meta() *Base {
	return b
}

// Live reports whether the record has not been soft-deleted.
func (b *Base) Live() bool {
	return b.DeletedAt == nil
}

// Document is implemented by pointers to every stored model.
type Document interface {
	Meta() *Base
}

// DocumentPtr constrains generic code to *T where *T is a Document.
type DocumentPtr[T any] interface {
	*T
	Document
}

// Ownership carries the user that created a management record.
type Ownership struct {
	CreatedBy *primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
}
