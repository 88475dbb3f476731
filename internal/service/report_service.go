package service

import (
	"context"
	"time"

	"library-admin/internal/domain"
)

// ReportService 只读报表，每次都直接查库
type ReportService struct {
	store domain.Store
	now   func() time.Time
}

func NewReportService(store domain.Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func (s *ReportService) ActiveIssues(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.Transactions().ListOpen(ctx)
}

// Overdue 应还日期早于今天且未归还
func (s *ReportService) Overdue(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.Transactions().ListOverdue(ctx, domain.DateOf(s.now()))
}

func (s *ReportService) MasterMemberships(ctx context.Context) ([]domain.Membership, error) {
	return s.store.Memberships().List(ctx)
}

func (s *ReportService) MasterBooks(ctx context.Context) ([]domain.Item, error) {
	movie := false
	return s.store.Items().List(ctx, domain.ItemFilter{IsMovie: &movie})
}

func (s *ReportService) MasterMovies(ctx context.Context) ([]domain.Item, error) {
	movie := true
	return s.store.Items().List(ctx, domain.ItemFilter{IsMovie: &movie})
}

// Today 报表生成时使用的日期
func (s *ReportService) Today() time.Time { return domain.DateOf(s.now()) }
