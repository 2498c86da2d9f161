package audit

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

// Recorder appends audit entries inside the transaction that made the change
type Recorder interface {
	WithTx(tx *gorm.DB) Recorder
	Record(ctx context.Context, entry *models.AuditLog) error
	History(ctx context.Context, resourceType, resourceID string, q *api.PageQuery) (*HistoryResponse, error)
}

type recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo}
}

func (r *recorder) WithTx(tx *gorm.DB) Recorder {
	return &recorder{repo: r.repo.WithTx(tx)}
}

func (r *recorder) Record(ctx context.Context, entry *models.AuditLog) error {
	if err := r.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s: %w", entry.Action, err)
	}
	return nil
}

func (r *recorder) History(ctx context.Context, resourceType, resourceID string, q *api.PageQuery) (*HistoryResponse, error) {
	q.Normalize()

	entries, total, err := r.repo.ListByResource(ctx, resourceType, resourceID, q.PerPage, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return &HistoryResponse{
		Entries: entries,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	}, nil
}

// HistoryResponse is a page of audit entries, oldest first
type HistoryResponse struct {
	Entries []models.AuditLog `json:"entries"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// NopRecorder discards entries
type NopRecorder struct{}

func (n NopRecorder) WithTx(_ *gorm.DB) Recorder { return n }

func (NopRecorder) Record(_ context.Context, _ *models.AuditLog) error { return nil }

func (NopRecorder) History(_ context.Context, _, _ string, q *api.PageQuery) (*HistoryResponse, error) {
	q.Normalize()
	return &HistoryResponse{Entries: []models.AuditLog{}, Page: q.Page, PerPage: q.PerPage}, nil
}
