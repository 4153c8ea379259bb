package store

import (
	"context"
	"errors"
	"fmt"

	"iot-web/internal/database"
	"iot-web/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation 為 Postgres unique_violation 錯誤碼
const uniqueViolation = "23505"

const userColumns = `id, name, last_name, email, password, create_date, is_active, is_admin`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.LastName,
		&u.Email,
		&u.Password,
		&u.CreateDate,
		&u.IsActive,
		&u.IsAdmin,
	)
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrUserNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", notFound(err))
	}
	return u, nil
}

// GetUserByEmail 以 email 查詢，呼叫端需先轉為小寫
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", notFound(err))
	}
	return u, nil
}

// ListUsers 依建立順序 (id) 分頁列出使用者，沒有資料時回傳空 slice
func ListUsers(ctx context.Context, db database.DB, limit, offset int) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// CreateUser 新增使用者，u.Password 必須已經是 hash。
// 寫入前會先 Normalize，成功後回填 id 與 create_date。
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	u.Normalize()
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, last_name, email, password, is_active, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, create_date`,
		u.Name,
		u.LastName,
		u.Email,
		u.Password,
		u.IsActive,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreateDate); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w", model.ErrUserExists)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 以 u.ID 覆寫 id、email、create_date 以外的欄位，回傳更新後的資料列
func UpdateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	u.Normalize()
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET name = $1, last_name = $2, password = $3, is_active = $4, is_admin = $5
		 WHERE id = $6
		 RETURNING `+userColumns,
		u.Name,
		u.LastName,
		u.Password,
		u.IsActive,
		u.IsAdmin,
		u.ID,
	)
	updated := &model.User{}
	if err := scanUser(row, updated); err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", notFound(err))
	}
	return updated, nil
}

func DeleteUser(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", model.ErrUserNotFound)
	}
	return nil
}
