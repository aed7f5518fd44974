package store

import (
	"context"
	"fmt"

	"github.com/abhisek/quizwise/ent"
	"github.com/abhisek/quizwise/ent/quizgenerationevent"
	entschema "github.com/abhisek/quizwise/ent/schema"
)

func (r *eventRepo) AppendQuizGeneration(ctx context.Context, data QuizGenerationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.QuizGenerationEvent.Create().
		SetSequence(seqNum).
		SetQuizID(data.QuizID).
		SetDocumentID(data.DocumentID).
		SetTemplateID(data.TemplateID).
		SetTitle(data.Title).
		SetRequestedCount(data.RequestedCount).
		SetQuestionCount(len(data.Questions)).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetLatencyMs(data.LatencyMs)

	if len(data.Questions) > 0 {
		qs := make([]entschema.QuizQuestion, len(data.Questions))
		for i, q := range data.Questions {
			qs[i] = entschema.QuizQuestion{
				Type:        q.Type,
				Text:        q.Text,
				Choices:     q.Choices,
				Answer:      q.Answer,
				Explanation: q.Explanation,
				FocusArea:   q.FocusArea,
			}
		}
		builder = builder.SetQuestions(qs)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save quiz generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) GetQuizGeneration(ctx context.Context, quizID string) (*QuizGenerationRecord, error) {
	e, err := r.client.QuizGenerationEvent.Query().
		Where(quizgenerationevent.QuizID(quizID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quiz %s: %w", quizID, err)
	}

	rec := &QuizGenerationRecord{
		Sequence: e.Sequence,
		Time:     e.Timestamp,
		QuizGenerationEventData: QuizGenerationEventData{
			QuizID:         e.QuizID,
			DocumentID:     e.DocumentID,
			TemplateID:     e.TemplateID,
			Title:          e.Title,
			RequestedCount: e.RequestedCount,
			Success:        e.Success,
			ErrorMessage:   e.ErrorMessage,
			LatencyMs:      e.LatencyMs,
		},
	}
	for _, q := range e.Questions {
		rec.Questions = append(rec.Questions, QuizQuestionData{
			Type:        q.Type,
			Text:        q.Text,
			Choices:     q.Choices,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			FocusArea:   q.FocusArea,
		})
	}
	return rec, nil
}
