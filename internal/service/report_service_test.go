package service

import (
	"context"
	"testing"

	"library-admin/internal/domain"
)

func TestOverdueReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.addMember(t, "N-1")
	late := e.addItem(t, "B-001", false)
	onTime := e.addItem(t, "B-002", false)
	returned := e.addItem(t, "M-001", true)

	lateTx := e.issue(t, late.ID, m.ID, 2)
	e.issue(t, onTime.ID, m.ID, 10)
	retTx := e.issue(t, returned.ID, m.ID, 1)
	if _, err := e.circulation.ReturnBook(ctx, retTx.ID, date(1)); err != nil {
		t.Fatalf("return: %v", err)
	}

	// 五天后：B-001 逾期，B-002 未到期，M-001 已归还
	e.today = domain.AddDays(day0, 5)
	overdue, err := e.reports.Overdue(ctx)
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != lateTx.ID {
		t.Fatalf("overdue = %+v", overdue)
	}
	if overdue[0].Membership == nil || overdue[0].Membership.NationalID != "N-1" {
		t.Fatalf("membership not preloaded")
	}

	active, err := e.reports.ActiveIssues(ctx)
	if err != nil || len(active) != 2 {
		t.Fatalf("active = %d, %v", len(active), err)
	}

	// 应还日当天不算逾期
	e.today = domain.AddDays(day0, 2)
	if overdue, _ := e.reports.Overdue(ctx); len(overdue) != 0 {
		t.Fatalf("due today counted as overdue: %d", len(overdue))
	}
}

func TestMasterLists(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addItem(t, "B-002", false)
	e.addItem(t, "M-001", true)
	e.addItem(t, "B-001", false)
	e.addMember(t, "N-1")
	e.addMember(t, "N-2")

	books, err := e.reports.MasterBooks(ctx)
	if err != nil || len(books) != 2 {
		t.Fatalf("books = %d, %v", len(books), err)
	}
	// 主键顺序
	if books[0].SerialNumber != "B-002" || books[1].SerialNumber != "B-001" {
		t.Fatalf("order = %s, %s", books[0].SerialNumber, books[1].SerialNumber)
	}
	movies, _ := e.reports.MasterMovies(ctx)
	if len(movies) != 1 || !movies[0].IsMovie {
		t.Fatalf("movies = %+v", movies)
	}
	ms, _ := e.reports.MasterMemberships(ctx)
	if len(ms) != 2 {
		t.Fatalf("memberships = %d", len(ms))
	}
	if !e.reports.Today().Equal(domain.DateOf(day0)) {
		t.Fatalf("today = %v", e.reports.Today())
	}
}
