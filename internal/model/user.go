// File: internal/model/user.go
package model

import (
	"strings"
	"time"
)

// User 對應 users 資料表的一列
type User struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	CreateDate time.Time `db:"create_date" json:"create_date"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	IsAdmin    bool      `db:"is_admin" json:"is_admin"`
}

// Normalize 將 name、last_name、email 轉為小寫，寫入資料庫前必須呼叫
func (u *User) Normalize() {
	u.Name = strings.ToLower(u.Name)
	u.LastName = strings.ToLower(u.LastName)
	u.Email = strings.ToLower(u.Email)
}

// UserInput 建立與更新共用的輸入 (Password 為明文)
type UserInput struct {
	Name     string
	LastName string
	Email    string
	Password string
	IsActive bool
	IsAdmin  bool
}
