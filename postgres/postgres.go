package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

func (opts Options) DSN() string {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)
}

func NewConnection(opts Options) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{})
}

// Session pins one pooled connection for a unit of work. Every repository
// built on the session issues its statements over that connection, which is
// handed back to the pool by Close.
type Session struct {
	db       *gorm.DB
	conn     *sql.Conn
	affected atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

// OpenSession acquires a dedicated connection from the pool behind db.
// Callers must Close the session.
func OpenSession(ctx context.Context, db *gorm.DB) (*Session, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: acquire connection: %w", err)
	}

	tx := db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = conn

	return &Session{db: tx, conn: conn}, nil
}

// DB returns the session-bound handle for ctx.
func (s *Session) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// SaveChanges reports the rows written through the session since the previous
// call. Writes are applied eagerly, so nothing is left to flush.
func (s *Session) SaveChanges() int64 {
	return s.affected.Swap(0)
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *Session) track(rows int64) {
	s.affected.Add(rows)
}
