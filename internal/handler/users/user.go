package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"iot-web/internal/api"
	"iot-web/internal/model"

	"github.com/labstack/echo/v4"
)

// AllUsersLimit 為 GET /users 一次回傳的最大筆數
const AllUsersLimit = 100

// UserRepository 為 handler 所需的資料存取操作，*repository.UserRepository 實作此介面
type UserRepository interface {
	Create(ctx context.Context, in model.UserInput) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.User, error)
	Update(ctx context.Context, in model.UserInput) (*model.User, error)
	Delete(ctx context.Context, id int) error
}

// parseUserID 只接受 users.id (int4) 範圍內的正整數
func parseUserID(c echo.Context) (int, error) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user ID")
	}
	return int(id), nil
}

// bindUser 綁定並驗證請求；失敗時已寫出 400/422 回應並回傳 nil
func bindUser(c echo.Context) (*api.CreateUserRequest, error) {
	var req api.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
	}
	// bcrypt 上限以 bytes 計，validator 的 max 以字元計
	if len(req.Password) > model.MaxPasswordBytes {
		return nil, passwordTooLong(c)
	}
	return &req, nil
}

func passwordTooLong(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: model.ErrPasswordTooLong.Error()})
}

// @Summary     Create a new user
// @Description 建立新使用者；name、last_name、email 會轉為小寫，密碼以 bcrypt 儲存
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user  body      api.CreateUserRequest  true  "使用者資料"
// @Success     201   {object}  api.UserResponse
// @Failure     400   {object}  api.ErrorResponse
// @Failure     409   {object}  api.ErrorResponse  "Email 已存在"
// @Failure     422   {object}  api.ErrorResponse  "欄位驗證失敗"
// @Failure     500   {object}  api.ErrorResponse
// @Router      /users/ [post]
func CreateUserHandler(repo UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindUser(c)
		if req == nil {
			return err
		}

		user, err := repo.Create(c.Request().Context(), req.Input())
		if errors.Is(err, model.ErrUserExists) {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "User already exists."})
		}
		if errors.Is(err, model.ErrPasswordTooLong) {
			return passwordTooLong(c)
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, api.NewUserResponse(user))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       user_id  path      int  true  "使用者 ID"
// @Success     200      {object}  api.UserResponse
// @Failure     400      {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404      {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500      {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /users/{user_id} [get]
func GetUserHandler(repo UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		user, err := repo.GetByID(c.Request().Context(), id)
		if errors.Is(err, model.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found."})
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     List users
// @Description 回傳前 100 筆使用者 (依建立順序)，沒有任何使用者時回傳 404
// @Tags        users
// @Produce     json
// @Success     200  {array}   api.UserResponse
// @Failure     404  {object}  api.ErrorResponse  "沒有使用者"
// @Failure     500  {object}  api.ErrorResponse
// @Router      /users/ [get]
func ListUsersHandler(repo UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := repo.ListPage(c.Request().Context(), AllUsersLimit, 0)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "No users found."})
		}
		return c.JSON(http.StatusOK, api.NewUserListResponse(users))
	}
}

// @Summary     Update a user by email
// @Description 以 email 找出使用者並覆寫其餘欄位；密碼一律重新 hash，email 本身無法修改
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user  body      api.CreateUserRequest  true  "使用者資料"
// @Success     200   {object}  api.UserResponse
// @Failure     400   {object}  api.ErrorResponse
// @Failure     404   {object}  api.ErrorResponse  "使用者不存在"
// @Failure     422   {object}  api.ErrorResponse  "欄位驗證失敗"
// @Failure     500   {object}  api.ErrorResponse
// @Router      /users/ [put]
func UpdateUserHandler(repo UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindUser(c)
		if req == nil {
			return err
		}

		user, err := repo.Update(c.Request().Context(), req.Input())
		if errors.Is(err, model.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Cannot update user that does not exist."})
		}
		if errors.Is(err, model.ErrPasswordTooLong) {
			return passwordTooLong(c)
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者帳號
// @Tags        users
// @Param       user_id  path  int  true  "使用者 ID"
// @Success     204      "No Content"
// @Failure     400      {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404      {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500      {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(repo UserRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		err = repo.Delete(c.Request().Context(), id)
		if errors.Is(err, model.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Cannot delete user that does not exist."})
		}
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
