// Package storetest provides an in-memory database.DB that understands the
// statements issued by package store. It is meant for tests only.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"iot-web/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemDB keeps users in insertion order and enforces the unique email
// constraint the way Postgres does (SQLSTATE 23505).
type MemDB struct {
	mu      sync.Mutex
	users   []model.User
	nextID  int
	Now     func() time.Time
	PingErr error
}

func NewMemDB() *MemDB {
	return &MemDB{nextID: 1, Now: time.Now}
}

// Users returns a copy of the stored rows.
func (m *MemDB) Users() []model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.User(nil), m.users...)
}

func (m *MemDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := normalize(sql)
	if !strings.HasPrefix(q, "DELETE FROM users WHERE id =") {
		return pgconn.CommandTag{}, fmt.Errorf("storetest: unsupported Exec %q", q)
	}
	id := args[0].(int)
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
	}
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (m *MemDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := normalize(sql)
	if !strings.HasPrefix(q, "SELECT") || !strings.Contains(q, "LIMIT $1 OFFSET $2") {
		return nil, fmt.Errorf("storetest: unsupported Query %q", q)
	}
	limit, offset := args[0].(int), args[1].(int)
	rs := &rows{}
	for i := offset; i < len(m.users) && i < offset+limit; i++ {
		rs.data = append(rs.data, userValues(m.users[i]))
	}
	return rs, nil
}

func (m *MemDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := normalize(sql)
	switch {
	case strings.HasPrefix(q, "INSERT INTO users"):
		email := args[2].(string)
		for _, u := range m.users {
			if u.Email == email {
				return &row{err: &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"users_email_key\""}}
			}
		}
		u := model.User{
			ID:         m.nextID,
			Name:       args[0].(string),
			LastName:   args[1].(string),
			Email:      email,
			Password:   args[3].(string),
			CreateDate: m.Now(),
			IsActive:   args[4].(bool),
			IsAdmin:    args[5].(bool),
		}
		m.nextID++
		m.users = append(m.users, u)
		return &row{values: []any{u.ID, u.CreateDate}}

	case strings.HasPrefix(q, "UPDATE users"):
		id := args[5].(int)
		for i := range m.users {
			if m.users[i].ID == id {
				m.users[i].Name = args[0].(string)
				m.users[i].LastName = args[1].(string)
				m.users[i].Password = args[2].(string)
				m.users[i].IsActive = args[3].(bool)
				m.users[i].IsAdmin = args[4].(bool)
				return &row{values: userValues(m.users[i])}
			}
		}
		return &row{err: pgx.ErrNoRows}

	case strings.HasPrefix(q, "SELECT") && strings.HasSuffix(q, "WHERE id = $1"):
		return m.findRow(func(u model.User) bool { return u.ID == args[0].(int) })

	case strings.HasPrefix(q, "SELECT") && strings.HasSuffix(q, "WHERE email = $1"):
		return m.findRow(func(u model.User) bool { return u.Email == args[0].(string) })
	}
	return &row{err: fmt.Errorf("storetest: unsupported QueryRow %q", q)}
}

func (m *MemDB) Ping(context.Context) error { return m.PingErr }

func (m *MemDB) Close() {}

func (m *MemDB) findRow(match func(model.User) bool) pgx.Row {
	for _, u := range m.users {
		if match(u) {
			return &row{values: userValues(u)}
		}
	}
	return &row{err: pgx.ErrNoRows}
}

func normalize(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func userValues(u model.User) []any {
	return []any{u.ID, u.Name, u.LastName, u.Email, u.Password, u.CreateDate, u.IsActive, u.IsAdmin}
}

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("storetest: scan %d columns into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int:
			*d = v.(int)
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("storetest: unsupported destination %T", dest[i])
		}
	}
	return nil
}

type row struct {
	values []any
	err    error
}

func (r *row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type rows struct {
	data [][]any
	idx  int
}

func (r *rows) Close()                                       {}
func (r *rows) Err() error                                   { return nil }
func (r *rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}
func (r *rows) Scan(dest ...any) error { return assign(dest, r.data[r.idx-1]) }
func (r *rows) Values() ([]any, error) { return r.data[r.idx-1], nil }
func (r *rows) RawValues() [][]byte    { return nil }
func (r *rows) Conn() *pgx.Conn        { return nil }
