package domain

import "context"

// Store groups the repositories over one database handle.
type Store interface {
	Users() UserRepository
	Memberships() MembershipRepository
	Items() ItemRepository
	Transactions() TransactionRepository
	// WithinTx 在同一个数据库事务里执行 fn，fn 返回错误则回滚
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
