// File: internal/service/password.go
package service

import (
	"context"
	"errors"

	"iot-web/internal/model"
	"iot-web/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Hasher 將明文密碼轉為不可逆的 hash
type Hasher func(ctx context.Context, password string) (string, error)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
// 超過 72 bytes 回傳 model.ErrPasswordTooLong
func HashPassword(password string) (string, error) {
	if len(password) > model.MaxPasswordBytes {
		return "", model.ErrPasswordTooLong
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// DirectHasher 在呼叫端 goroutine 上執行 HashPassword
func DirectHasher(_ context.Context, password string) (string, error) {
	return HashPassword(password)
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// PooledHasher 讓 bcrypt 在 worker pool 上執行，同時進行的 hash 數量不超過 worker 數。
// ctx 取消時不再等待空閒 worker。
func PooledHasher(p worker.Pool) Hasher {
	return func(ctx context.Context, password string) (string, error) {
		return worker.Run(ctx, p, func() (string, error) {
			return HashPassword(password)
		})
	}
}
