package util

import (
	"errors"
	"fmt"
)

// ErrorKind 业务错误分类，决定 HTTP 状态码
type ErrorKind int

const (
	KindAuthorization ErrorKind = iota + 1
	KindNotAvailable
	KindQuotaExceeded
	KindInvalidState
	KindValidation
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindNotAvailable:
		return "not_available"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// AppError 可向用户展示的业务错误
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is 按分类匹配，便于 errors.Is(err, ErrQuotaExhausted) 之类的判断
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func AuthorizationError(format string, args ...interface{}) error {
	return newError(KindAuthorization, format, args...)
}

func NotAvailableError(format string, args ...interface{}) error {
	return newError(KindNotAvailable, format, args...)
}

func QuotaExceededError(format string, args ...interface{}) error {
	return newError(KindQuotaExceeded, format, args...)
}

func InvalidStateError(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func ValidationError(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func NotFoundError(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

// KindOf 返回错误分类，非业务错误返回 0
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

var (
	ErrPermissionDenied      = &AppError{Kind: KindAuthorization, Message: "permission denied"}
	ErrEvaluationNotFound    = &AppError{Kind: KindNotFound, Message: "evaluation not found"}
	ErrQuestionNotFound      = &AppError{Kind: KindNotFound, Message: "question not found"}
	ErrAttemptNotFound       = &AppError{Kind: KindNotFound, Message: "attempt not found"}
	ErrReopenNotFound        = &AppError{Kind: KindNotFound, Message: "reopen request not found"}
	ErrSectionNotFound       = &AppError{Kind: KindNotFound, Message: "section not found"}
	ErrEvaluationClosed      = &AppError{Kind: KindNotAvailable, Message: "evaluation closed"}
	ErrQuotaExhausted        = &AppError{Kind: KindQuotaExceeded, Message: "no attempts remaining"}
	ErrAttemptSubmitted      = &AppError{Kind: KindInvalidState, Message: "attempt already submitted"}
	ErrAttemptNotSubmitted   = &AppError{Kind: KindInvalidState, Message: "attempt not submitted yet"}
	ErrAttemptContended      = &AppError{Kind: KindInvalidState, Message: "attempt slot contended, try again"}
	ErrReopenAlreadyPending  = &AppError{Kind: KindInvalidState, Message: "a reopen request is already pending"}
	ErrReopenAlreadyResolved = &AppError{Kind: KindInvalidState, Message: "reopen request already resolved"}
	ErrEvaluationHasAttempts = &AppError{Kind: KindInvalidState, Message: "evaluation already has attempts"}
	ErrAlreadyPassed         = &AppError{Kind: KindNotAvailable, Message: "evaluation already passed"}
	ErrAttemptsRemaining     = &AppError{Kind: KindNotAvailable, Message: "attempts still remaining"}
)
