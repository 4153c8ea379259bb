// File: internal/repository/user.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"iot-web/internal/database"
	"iot-web/internal/model"
	"iot-web/internal/service"
	"iot-web/internal/store"
)

// 以下變數供測試替換
var (
	getUserByID    = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	listUsers      = store.ListUsers
	createUser     = store.CreateUser
	updateUser     = store.UpdateUser
	deleteUser     = store.DeleteUser
)

// UserRepository 負責 users 資料表的讀寫與唯一性、正規化規則
type UserRepository struct {
	db   database.DB
	hash service.Hasher
}

// NewUserRepository 建立 UserRepository；hash 為 nil 時使用 service.DirectHasher
func NewUserRepository(db database.DB, hash service.Hasher) *UserRepository {
	if hash == nil {
		hash = service.DirectHasher
	}
	return &UserRepository{db: db, hash: hash}
}

// Create 新增使用者。相同 email (不分大小寫) 已存在時回傳 model.ErrUserExists。
// 先查詢是否存在以取得明確錯誤；並發寫入時由資料表的 unique 限制把關，
// store 會把該錯誤轉成同一個 model.ErrUserExists。
func (r *UserRepository) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	_, err := r.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, model.ErrUserExists
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, err
	}

	hash, err := r.hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return createUser(ctx, r.db, &model.User{
		Name:     in.Name,
		LastName: in.LastName,
		Email:    in.Email,
		Password: hash,
		IsActive: in.IsActive,
		IsAdmin:  in.IsAdmin,
	})
}

// GetByID 找不到時回傳 model.ErrUserNotFound
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return getUserByID(ctx, r.db, id)
}

// GetByEmail 以小寫 email 查詢，找不到時回傳 model.ErrUserNotFound
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return getUserByEmail(ctx, r.db, strings.ToLower(email))
}

// ListPage 依建立順序回傳最多 limit 筆，略過前 offset 筆
func (r *UserRepository) ListPage(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := listUsers(ctx, r.db, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Update 以 email 找出既有使用者並整筆覆寫 (email 本身不可修改)。
// 密碼一律重新 hash；回傳更新後的資料。
func (r *UserRepository) Update(ctx context.Context, in model.UserInput) (*model.User, error) {
	current, err := r.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	hash, err := r.hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return updateUser(ctx, r.db, &model.User{
		ID:       current.ID,
		Name:     in.Name,
		LastName: in.LastName,
		Email:    current.Email,
		Password: hash,
		IsActive: in.IsActive,
		IsAdmin:  in.IsAdmin,
	})
}

// Delete 刪除指定 id 的使用者，不存在時回傳 model.ErrUserNotFound
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return deleteUser(ctx, r.db, id)
}
