// Package validation implements the form checks of the login, signup,
// profile, school change and write-post screens. Failures are returned as
// *Error values; how they are shown is up to the caller.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Code string

const (
	CodeMissingFields        Code = "missing_fields"
	CodeInvalidEmail         Code = "invalid_email"
	CodeInvalidFields        Code = "invalid_fields"
	CodeTermsRequired        Code = "terms_required"
	CodeUnknownSchool        Code = "unknown_school"
	CodeUnknownCategory      Code = "unknown_category"
	CodeSameSchool           Code = "same_school"
	CodeConfirmationRequired Code = "confirmation_required"
)

const (
	MsgAllFields          = "모든 항목을 입력해주세요."
	MsgLoginRequired      = "이메일과 비밀번호를 입력해주세요."
	MsgEmailFormat        = "올바른 이메일 형식을 입력해주세요."
	MsgSignupRequired     = "모든 필수 항목을 입력해주세요."
	MsgCheckInput         = "입력 정보를 다시 확인해주세요."
	MsgTermsRequired      = "필수 약관에 동의해주세요."
	MsgProfileRequired    = "이름과 이메일을 입력해주세요."
	MsgSelectSchool       = "학교를 선택해주세요."
	MsgSameSchool         = "현재 학교와 동일합니다."
	MsgFieldEmail         = "올바른 이메일 형식이 아닙니다."
	MsgFieldPassword      = "비밀번호는 8자 이상이어야 합니다."
	MsgFieldPasswordMatch = "비밀번호가 일치하지 않습니다."
	MsgFieldName          = "이름은 2자 이상이어야 합니다."
)

var (
	ErrValidation = errors.New("validation failed")

	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// AsError unwraps err into a *Error if it carries one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsConfirmationRequired reports whether err asks the user to confirm first.
func IsConfirmationRequired(err error) bool {
	ve, ok := AsError(err)
	return ok && ve.Code == CodeConfirmationRequired
}

// ConfirmationRequired builds the error returned by destructive actions
// invoked without confirmation. prompt is the question to show the user.
func ConfirmationRequired(prompt string) *Error {
	return newError(CodeConfirmationRequired, prompt)
}

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
