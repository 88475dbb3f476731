package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"library-admin/internal/domain"
)

type MembershipInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ContactName    string `json:"contactName"`
	ContactAddress string `json:"contactAddress"`
	NationalID     string `json:"nationalId"`
	MembershipType string `json:"membershipType"`
}

// MembershipUpdate national ID and start date are fixed after creation.
type MembershipUpdate struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ContactName    string `json:"contactName"`
	ContactAddress string `json:"contactAddress"`
	MembershipType string `json:"membershipType"`
}

type ItemInput struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Genre        string `json:"genre"`
	SerialNumber string `json:"serialNumber"`
	IsMovie      bool   `json:"isMovie"`
}

// ItemUpdate 状态不可在此修改，只能经由借还流程
type ItemUpdate struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Genre   string `json:"genre"`
	IsMovie bool   `json:"isMovie"`
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserUpdate Password 为空时保留原密码
type UserUpdate struct {
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	IsAdmin  bool    `json:"isAdmin"`
	Password *string `json:"password"`
}

// CatalogService 维护会员、馆藏与账号；所有写操作要求管理员身份
type CatalogService struct {
	store domain.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewCatalogService(store domain.Store, l *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: l, now: time.Now}
}

// WithClock 替换“今天”的来源
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	// map 遍历无序，排序后报错信息稳定
	slices.Sort(missing)
	return fmt.Errorf("%w: %s required", domain.ErrInvalidInput, strings.Join(missing, ", "))
}

// ---------- Membership ----------

func (s *CatalogService) AddMembership(ctx context.Context, id domain.Identity, in MembershipInput) (*domain.Membership, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{
		"firstName": in.FirstName, "lastName": in.LastName, "nationalId": in.NationalID,
	}); err != nil {
		return nil, err
	}
	start := domain.DateOf(s.now())
	end, err := domain.MembershipEndDate(start, in.MembershipType)
	if err != nil {
		return nil, err
	}
	nationalID := strings.TrimSpace(in.NationalID)
	existing, err := s.store.Memberships().FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: national id %q already registered", domain.ErrConflict, nationalID)
	}

	m := &domain.Membership{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		ContactName:    strings.TrimSpace(in.ContactName),
		ContactAddress: strings.TrimSpace(in.ContactAddress),
		NationalID:     nationalID,
		StartDate:      start,
		EndDate:        end,
		MembershipType: in.MembershipType,
	}
	if err := s.store.Memberships().Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("membership added", zap.Uint("membership_id", m.ID), zap.String("type", m.MembershipType), zap.String("by", id.Username))
	return m, nil
}

func (s *CatalogService) UpdateMembership(ctx context.Context, id domain.Identity, membershipID uint, in MembershipUpdate) (*domain.Membership, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{"firstName": in.FirstName, "lastName": in.LastName}); err != nil {
		return nil, err
	}
	m, err := s.GetMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	// 以原开始日期重新计算到期日
	end, err := domain.MembershipEndDate(m.StartDate, in.MembershipType)
	if err != nil {
		return nil, err
	}
	m.FirstName = strings.TrimSpace(in.FirstName)
	m.LastName = strings.TrimSpace(in.LastName)
	m.ContactName = strings.TrimSpace(in.ContactName)
	m.ContactAddress = strings.TrimSpace(in.ContactAddress)
	m.MembershipType = in.MembershipType
	m.EndDate = end
	if err := s.store.Memberships().Update(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("membership updated", zap.Uint("membership_id", m.ID), zap.String("by", id.Username))
	return m, nil
}

func (s *CatalogService) GetMembership(ctx context.Context, membershipID uint) (*domain.Membership, error) {
	m, err := s.store.Memberships().FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: membership %d", domain.ErrNotFound, membershipID)
	}
	return m, nil
}

func (s *CatalogService) ListMemberships(ctx context.Context) ([]domain.Membership, error) {
	return s.store.Memberships().List(ctx)
}

// ---------- Item ----------

func (s *CatalogService) AddItem(ctx context.Context, id domain.Identity, in ItemInput) (*domain.Item, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{"title": in.Title, "serialNumber": in.SerialNumber}); err != nil {
		return nil, err
	}
	serial := strings.TrimSpace(in.SerialNumber)
	existing, err := s.store.Items().FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: serial number %q already exists", domain.ErrConflict, serial)
	}
	it := &domain.Item{
		Title:        strings.TrimSpace(in.Title),
		Author:       strings.TrimSpace(in.Author),
		Genre:        strings.TrimSpace(in.Genre),
		SerialNumber: serial,
		IsMovie:      in.IsMovie,
		Status:       domain.StatusAvailable,
	}
	if err := s.store.Items().Create(ctx, it); err != nil {
		return nil, err
	}
	s.log.Info("item added", zap.Uint("item_id", it.ID), zap.String("serial", it.SerialNumber), zap.Bool("movie", it.IsMovie))
	return it, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id domain.Identity, itemID uint, in ItemUpdate) (*domain.Item, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{"title": in.Title}); err != nil {
		return nil, err
	}
	it, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	it.Title = strings.TrimSpace(in.Title)
	it.Author = strings.TrimSpace(in.Author)
	it.Genre = strings.TrimSpace(in.Genre)
	it.IsMovie = in.IsMovie
	if err := s.store.Items().Update(ctx, it); err != nil {
		return nil, err
	}
	s.log.Info("item updated", zap.Uint("item_id", it.ID), zap.String("title", it.Title), zap.Bool("movie", it.IsMovie))
	return it, nil
}

func (s *CatalogService) GetItem(ctx context.Context, itemID uint) (*domain.Item, error) {
	it, err := s.store.Items().FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, itemID)
	}
	return it, nil
}

func (s *CatalogService) ListItems(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	return s.store.Items().List(ctx, f)
}

// ---------- User ----------

func (s *CatalogService) AddUser(ctx context.Context, id domain.Identity, in UserInput) (*domain.User, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{"username": in.Username, "password": in.Password}); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	existing, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, username)
	}
	u := &domain.User{
		Username: username,
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		IsAdmin:  in.IsAdmin,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user added", zap.Uint("user_id", u.ID), zap.String("username", u.Username), zap.Bool("admin", u.IsAdmin))
	return u, nil
}

func (s *CatalogService) UpdateUser(ctx context.Context, id domain.Identity, userID uint, in UserUpdate) (*domain.User, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := required(map[string]string{"username": in.Username}); err != nil {
		return nil, err
	}
	u, err := s.GetUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username != u.Username {
		other, err := s.store.Users().FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("%w: username %q is taken", domain.ErrConflict, username)
		}
	}
	u.Username = username
	u.FullName = strings.TrimSpace(in.FullName)
	u.IsAdmin = in.IsAdmin
	if in.Password != nil && *in.Password != "" {
		u.Password = *in.Password
	}
	if err := s.store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.Uint("user_id", u.ID), zap.String("by", id.Username))
	return u, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id domain.Identity, userID uint) (*domain.User, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return u, nil
}

func (s *CatalogService) ListUsers(ctx context.Context, id domain.Identity) ([]domain.User, error) {
	if err := id.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx)
}
