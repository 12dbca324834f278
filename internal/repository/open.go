package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Stores набор репозиториев одного бэкенда
type Stores struct {
	Products ProductRepository
	Orders   OrderRepository
	Users    UserRepository
	Backend  string

	close func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStores собирает in-memory репозитории над одним хранилищем
func NewMemoryStores() *Stores {
	store := NewMemoryStore()
	return &Stores{
		Products: store,
		Orders:   NewMemoryOrders(store),
		Users:    NewMemoryUsers(store),
		Backend:  "memory",
	}
}

// Open выбирает бэкенд по схеме строки подключения.
// Пустая строка означает in-memory хранилище.
func Open(ctx context.Context, dsn, defaultDatabase string) (*Stores, error) {
	switch {
	case dsn == "":
		slog.Warn("no database connection string configured, data will not survive a restart")
		return NewMemoryStores(), nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		ms, err := ConnectMongo(ctx, dsn, DatabaseName(dsn, defaultDatabase))
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: ms.Products(),
			Orders:   ms.Orders(),
			Users:    ms.Users(),
			Backend:  "mongodb",
			close:    ms.Close,
		}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		ps, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: ps.Products(),
			Orders:   ps.Orders(),
			Users:    ps.Users(),
			Backend:  "postgres",
			close:    ps.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", schemeOf(dsn))
	}
}

// DatabaseName takes the database from the URI path, falling back when absent.
func DatabaseName(dsn, fallback string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return fallback
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return fallback
}

func schemeOf(dsn string) string {
	if i := strings.Index(dsn, "://"); i > 0 {
		return dsn[:i]
	}
	return dsn
}
