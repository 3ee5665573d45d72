// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// メッセージはフロントエンドの表示言語に合わせて英語で保持する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, game, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeAccountBanned     = "ACCOUNT_BANNED"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidRegionCode = "INVALID_REGION_CODE"
	ErrCodeTooManyRegions    = "TOO_MANY_REGIONS"
	ErrCodeInvalidPagination = "INVALID_PAGINATION"
	ErrCodeLimitTooLarge     = "LIMIT_TOO_LARGE"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Authentication required",
		Category: "auth",
		Action:   "Sign in and try again.",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "Admin access required",
		Category: "auth",
		Action:   "This operation is limited to administrators.",
	}
}

// NewAccountBannedError はBAN済みアカウントによる更新操作のエラーを生成する。
func NewAccountBannedError() *APIError {
	return &APIError{
		Code:     ErrCodeAccountBanned,
		Message:  "Account banned",
		Category: "auth",
		Action:   "Contact an administrator if you believe this is a mistake.",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("User not found: %s", email),
		Category: "game",
		Action:   "Check the email address.",
	}
}

// NewInvalidRequestError はリクエストボディ不正のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("Invalid request: %s", reason),
		Category: "validation",
		Action:   "Send a well-formed JSON body.",
	}
}

// NewInvalidRegionCodeError は未知のリージョンコードのエラーを生成する。
func NewInvalidRegionCodeError(code string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRegionCode,
		Message:  fmt.Sprintf("Unknown region code: %s", code),
		Category: "validation",
		Action:   "Use the two or three letter codes shown on the map.",
	}
}

// NewTooManyRegionsError は訪問済みリストが上限を超えた場合のエラーを生成する。
func NewTooManyRegionsError(max int) *APIError {
	return &APIError{
		Code:     ErrCodeTooManyRegions,
		Message:  fmt.Sprintf("Too many regions: the list cannot exceed %d entries", max),
		Category: "validation",
		Action:   "Each region can only be visited once.",
	}
}

// NewInvalidPaginationError はページネーションパラメータ不正のエラーを生成する。
func NewInvalidPaginationError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPagination,
		Message:  "Invalid pagination parameters",
		Category: "validation",
		Action:   "limit and offset must be non-negative integers.",
	}
}

// NewLimitTooLargeError はlimitが上限を超えた場合のエラーを生成する。
func NewLimitTooLargeError(max int) *APIError {
	return &APIError{
		Code:     ErrCodeLimitTooLarge,
		Message:  "Limit too large",
		Category: "validation",
		Action:   fmt.Sprintf("limit must be %d or less.", max),
	}
}
