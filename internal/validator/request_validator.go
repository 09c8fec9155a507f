// Package validator は echo の Validator 実装。
// リクエストの形（必須・形式・列挙値）だけを見て、業務ルールは usecase に任せる。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RequestValidator struct {
	v *validator.Validate
}

func New() *RequestValidator {
	v := validator.New()

	//エラーメッセージは json のフィールド名で出す
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// echo.Validator
func (rv *RequestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// Message は 400 の本文に出す1行の説明を作る
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	case "email":
		return "invalid " + fe.Field()
	case "oneof":
		return fmt.Sprintf("invalid %s: must be one of [%s]", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "url":
		return "invalid " + fe.Field()
	default:
		return "invalid " + fe.Field()
	}
}
