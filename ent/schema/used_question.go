package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UsedQuestion marks a question as served, with the time of its last use.
type UsedQuestion struct {
	ent.Schema
}

func (UsedQuestion) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("question_id").
			NotEmpty().
			Immutable(),
		field.Int64("used_at").
			Comment("Unix seconds of the last use"),
	}
}

func (UsedQuestion) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("used_at"),
	}
}
