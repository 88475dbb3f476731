package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"library-admin/internal/domain"
)

// Rules 借阅规则
type Rules struct {
	FinePerDay  float64
	MaxLoanDays int
}

func DefaultRules() Rules { return Rules{FinePerDay: 10, MaxLoanDays: 15} }

type IssueRequest struct {
	ItemID       uint   `json:"itemId"`
	MembershipID uint   `json:"membershipId"`
	IssueDate    string `json:"issueDate"`  // YYYY-MM-DD
	ReturnDate   string `json:"returnDate"` // YYYY-MM-DD，应还日期
	Remarks      string `json:"remarks"`
}

type ReturnResult struct {
	Transaction *domain.Transaction `json:"transaction"`
	DaysLate    int                 `json:"daysLate"`
	// FineDue 为 true 时交易保持打开，需走缴费流程
	FineDue bool `json:"fineDue"`
}

// CirculationService 借出、归还、罚款
type CirculationService struct {
	store domain.Store
	rules Rules
	log   *zap.Logger
	now   func() time.Time
}

func NewCirculationService(store domain.Store, rules Rules, l *zap.Logger) *CirculationService {
	if rules.MaxLoanDays <= 0 {
		rules.MaxLoanDays = DefaultRules().MaxLoanDays
	}
	if rules.FinePerDay < 0 {
		rules.FinePerDay = DefaultRules().FinePerDay
	}
	return &CirculationService{store: store, rules: rules, log: l, now: time.Now}
}

func (s *CirculationService) WithClock(now func() time.Time) *CirculationService {
	s.now = now
	return s
}

func (s *CirculationService) Rules() Rules { return s.rules }

func (s *CirculationService) Now() time.Time { return s.now() }

// errLostRace 条件更新未命中：检查之后被别的请求借走
var errLostRace = errors.New("item status changed")

func (s *CirculationService) IssueBook(ctx context.Context, req IssueRequest) (*domain.Transaction, error) {
	item, err := s.store.Items().FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Available() {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotAvailable, req.ItemID)
	}

	issue, err := domain.ParseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := domain.ParseDate(req.ReturnDate)
	if err != nil {
		return nil, err
	}
	today := domain.DateOf(s.now())
	if issue.Before(today) {
		return nil, fmt.Errorf("%w: issue date %s is in the past", domain.ErrInvalidDate, req.IssueDate)
	}
	if due.After(domain.AddDays(issue, s.rules.MaxLoanDays)) {
		return nil, fmt.Errorf("%w: return date cannot be more than %d days after issue date", domain.ErrInvalidDate, s.rules.MaxLoanDays)
	}
	if due.Before(issue) {
		return nil, fmt.Errorf("%w: return date %s is before issue date", domain.ErrInvalidDate, req.ReturnDate)
	}

	member, err := s.store.Memberships().FindByID(ctx, req.MembershipID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: membership %d", domain.ErrNotFound, req.MembershipID)
	}

	t := &domain.Transaction{
		ItemID:       item.ID,
		MembershipID: member.ID,
		IssueDate:    issue,
		ReturnDate:   due,
		Remarks:      optional(req.Remarks),
	}
	err = s.store.WithinTx(ctx, func(tx domain.Store) error {
		ok, err := tx.Items().SetStatus(ctx, item.ID, domain.StatusAvailable, domain.StatusIssued)
		if err != nil {
			return err
		}
		if !ok {
			return errLostRace
		}
		return tx.Transactions().Create(ctx, t)
	})
	if errors.Is(err, errLostRace) {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotAvailable, req.ItemID)
	}
	if err != nil {
		return nil, err
	}

	item.Status = domain.StatusIssued
	t.Item, t.Membership = item, member
	circulationEvents.WithLabelValues("issue").Inc()
	s.log.Info("item issued",
		zap.Uint("transaction_id", t.ID),
		zap.Uint("item_id", item.ID),
		zap.Uint("membership_id", member.ID),
		zap.String("due", due.Format(domain.DateLayout)),
	)
	return t, nil
}

// ReturnBook 按时归还一步关闭；逾期只记录罚款与归还日期，交易保持打开直到缴费
func (s *CirculationService) ReturnBook(ctx context.Context, transactionID uint, actualReturnDate string) (*ReturnResult, error) {
	t, err := s.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !t.Open() {
		return nil, fmt.Errorf("%w: transaction %d is already closed", domain.ErrConflict, transactionID)
	}
	// 已申报逾期归还：只能走缴费关闭
	if t.ReportedReturnDate != nil || t.FineOutstanding() {
		return nil, fmt.Errorf("%w: transaction %d has a pending fine, use pay-fine", domain.ErrConflict, transactionID)
	}
	actual, err := domain.ParseDate(actualReturnDate)
	if err != nil {
		return nil, err
	}
	if actual.Before(t.IssueDate) {
		return nil, fmt.Errorf("%w: return date %s is before issue date", domain.ErrInvalidDate, actualReturnDate)
	}

	if daysLate := domain.DaysBetween(t.ReturnDate, actual); daysLate > 0 {
		t.FineAmount = float64(daysLate) * s.rules.FinePerDay
		t.ReportedReturnDate = &actual
		if err := s.store.Transactions().Update(ctx, t); err != nil {
			return nil, err
		}
		circulationEvents.WithLabelValues("late_return").Inc()
		finesAssessed.Add(t.FineAmount)
		s.log.Info("late return, fine assessed",
			zap.Uint("transaction_id", t.ID),
			zap.Int("days_late", daysLate),
			zap.Float64("fine", t.FineAmount),
		)
		return &ReturnResult{Transaction: t, DaysLate: daysLate, FineDue: true}, nil
	}

	err = s.store.WithinTx(ctx, func(tx domain.Store) error {
		t.ActualReturnDate = &actual
		if err := tx.Transactions().Update(ctx, t); err != nil {
			return err
		}
		_, err := tx.Items().SetStatus(ctx, t.ItemID, domain.StatusIssued, domain.StatusAvailable)
		return err
	})
	if err != nil {
		return nil, err
	}
	if t.Item != nil {
		t.Item.Status = domain.StatusAvailable
	}
	circulationEvents.WithLabelValues("return").Inc()
	s.log.Info("item returned", zap.Uint("transaction_id", t.ID), zap.Uint("item_id", t.ItemID))
	return &ReturnResult{Transaction: t}, nil
}

// PayFine 记录缴费；已缴或无罚款时释放馆藏并以申报的归还日期关闭交易
func (s *CirculationService) PayFine(ctx context.Context, transactionID uint, finePaid bool, remarks string) (*domain.Transaction, error) {
	t, err := s.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	t.FinePaid = finePaid
	if r := optional(remarks); r != nil {
		t.Remarks = r
	}

	release := (finePaid || t.FineAmount == 0) && t.Open()
	err = s.store.WithinTx(ctx, func(tx domain.Store) error {
		if release {
			closed := domain.DateOf(s.now())
			if t.ReportedReturnDate != nil {
				closed = *t.ReportedReturnDate
			}
			t.ActualReturnDate = &closed
			if _, err := tx.Items().SetStatus(ctx, t.ItemID, domain.StatusIssued, domain.StatusAvailable); err != nil {
				return err
			}
		}
		return tx.Transactions().Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	if release && t.Item != nil {
		t.Item.Status = domain.StatusAvailable
	}
	circulationEvents.WithLabelValues("fine_payment").Inc()
	s.log.Info("fine payment recorded",
		zap.Uint("transaction_id", t.ID),
		zap.Bool("paid", finePaid),
		zap.Float64("fine", t.FineAmount),
		zap.Bool("closed", release),
	)
	return t, nil
}

func (s *CirculationService) GetTransaction(ctx context.Context, transactionID uint) (*domain.Transaction, error) {
	t, err := s.store.Transactions().FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transaction %d", domain.ErrNotFound, transactionID)
	}
	return t, nil
}

// CheckAvailability 按书名/作者模糊查询，至少给一个条件
func (s *CirculationService) CheckAvailability(ctx context.Context, title, author string) ([]domain.Item, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("%w: provide a title or an author", domain.ErrInvalidInput)
	}
	return s.store.Items().List(ctx, domain.ItemFilter{Title: title, Author: author})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
