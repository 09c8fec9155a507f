package usecase

import (
	"errors"
	"net/http"
)

// エラーの種類。handler は HTTPError.Status、テストは errors.Is で判定する。
var (
	//400 入力不足・不正
	ErrInvalidArgument = errors.New("invalid argument")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//404 参照先がない
	ErrNotFound = errors.New("not found")
	//409 重複・返金済み
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")

	// 参照先の注文が途中で消えていた。ログに残すだけで呼び出し元には返さない。
	ErrInconsistency = errors.New("inconsistency")
)

type HTTPError struct {
	Status  int
	Message string
}

func NewHTTPError(status int, msg string) *HTTPError {
	return &HTTPError{Status: status, Message: msg}
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}
