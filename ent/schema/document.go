package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document holds metadata for an uploaded source document. The bytes
// live in object storage under object_key.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("UUID assigned at upload time"),
		field.String("filename").
			NotEmpty().
			Comment("Original filename, used for template recommendation"),
		field.String("content_type").
			NotEmpty(),
		field.Int64("size_bytes").
			NonNegative(),
		field.String("object_key").
			NotEmpty().
			Unique(),
		field.Enum("status").
			Values("pending", "uploaded", "failed").
			Default("pending"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("created_at"),
	}
}
