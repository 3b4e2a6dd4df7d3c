package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded answer within a round.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("operator").
			NotEmpty().
			Comment("+, -, * or /"),
		field.String("mode").
			NotEmpty().
			Comment("range or sigfigs"),
		field.String("problem_text").
			NotEmpty().
			Comment("The problem shown, as a op b"),
		field.String("correct_answer").
			NotEmpty().
			Comment("Canonical exact result"),
		field.String("learner_answer").
			NotEmpty().
			Comment("Canonical form of what the learner entered"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("operator"),
	}
}
