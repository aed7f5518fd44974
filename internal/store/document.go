package store

import (
	"context"
	"fmt"

	"github.com/abhisek/quizwise/ent"
	"github.com/abhisek/quizwise/ent/document"
)

type documentRepo struct {
	client *ent.Client
}

func (r *documentRepo) Create(ctx context.Context, doc *Document) error {
	builder := r.client.Document.Create().
		SetID(doc.ID).
		SetFilename(doc.Filename).
		SetContentType(doc.ContentType).
		SetSizeBytes(doc.SizeBytes).
		SetObjectKey(doc.ObjectKey)
	if doc.Status != "" {
		builder = builder.SetStatus(document.Status(doc.Status))
	}

	d, err := builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	*doc = toDocument(d)
	return nil
}

func (r *documentRepo) Get(ctx context.Context, id string) (*Document, error) {
	d, err := r.client.Document.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	doc := toDocument(d)
	return &doc, nil
}

func (r *documentRepo) SetStatus(ctx context.Context, id string, status DocumentStatus) (*Document, error) {
	d, err := r.client.Document.UpdateOneID(id).
		SetStatus(document.Status(status)).
		Save(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("set document %s status: %w", id, err)
	}
	doc := toDocument(d)
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, limit int) ([]Document, error) {
	query := r.client.Document.Query().
		Order(ent.Desc(document.FieldCreatedAt), ent.Asc(document.FieldID))
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = toDocument(d)
	}
	return out, nil
}

func toDocument(d *ent.Document) Document {
	return Document{
		ID:          d.ID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		ObjectKey:   d.ObjectKey,
		Status:      DocumentStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
