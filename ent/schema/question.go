package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Question is a record in the trivia question bank.
type Question struct {
	ent.Schema
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Stable question identifier"),
		field.String("category").
			Default(""),
		field.String("source").
			Default("").
			Comment("Book the question is drawn from"),
		field.String("text"),
		field.String("type").
			Default("multiple_choice").
			Comment("multiple_choice, true_false or numeric"),
		field.JSON("options", []string{}).
			Optional().
			Comment("Answer choices for multiple choice questions"),
		field.String("answer"),
		field.String("explanation").
			Default(""),
		field.String("reference").
			Default(""),
		field.String("difficulty").
			Default(""),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("difficulty"),
	}
}
