package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"library-admin/internal/core/database"
	"library-admin/internal/domain"
	"library-admin/internal/repo"
)

var (
	admin   = domain.Identity{UserID: 1, Username: "admin", IsAdmin: true}
	regular = domain.Identity{UserID: 2, Username: "user"}
	// day0 所有测试里的“今天”
	day0 = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
)

type env struct {
	store       *repo.Store
	catalog     *CatalogService
	circulation *CirculationService
	reports     *ReportService
	auth        *AuthService
	today       time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "lib.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	e := &env{store: repo.NewStore(db), today: day0}
	clock := func() time.Time { return e.today }
	l := zap.NewNop()
	e.catalog = NewCatalogService(e.store, l).WithClock(clock)
	e.circulation = NewCirculationService(e.store, DefaultRules(), l).WithClock(clock)
	e.reports = NewReportService(e.store).WithClock(clock)
	e.auth = NewAuthService(e.store, l)
	return e
}

func date(offset int) string {
	return domain.AddDays(day0, offset).Format(domain.DateLayout)
}

func (e *env) addItem(t *testing.T, serial string, movie bool) *domain.Item {
	t.Helper()
	it, err := e.catalog.AddItem(context.Background(), admin, ItemInput{
		Title: "Title " + serial, Author: "Author", Genre: "Fiction", SerialNumber: serial, IsMovie: movie,
	})
	if err != nil {
		t.Fatalf("add item %s: %v", serial, err)
	}
	return it
}

func (e *env) addMember(t *testing.T, nationalID string) *domain.Membership {
	t.Helper()
	m, err := e.catalog.AddMembership(context.Background(), admin, MembershipInput{
		FirstName: "Asha", LastName: "Rao", ContactName: "Ravi", ContactAddress: "12 Lake Rd",
		NationalID: nationalID, MembershipType: domain.MembershipOneYear,
	})
	if err != nil {
		t.Fatalf("add membership: %v", err)
	}
	return m
}

func (e *env) issue(t *testing.T, itemID, memberID uint, dueOffset int) *domain.Transaction {
	t.Helper()
	tx, err := e.circulation.IssueBook(context.Background(), IssueRequest{
		ItemID: itemID, MembershipID: memberID, IssueDate: date(0), ReturnDate: date(dueOffset),
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tx
}

func (e *env) itemStatus(t *testing.T, id uint) string {
	t.Helper()
	it, err := e.store.Items().FindByID(context.Background(), id)
	if err != nil || it == nil {
		t.Fatalf("find item %d: %v", id, err)
	}
	return it.Status
}
