package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// ErrorKind classifies a failed provider call for the executor's
// per-action handling.
type ErrorKind int

const (
	// KindTransport covers network failures and anything unrecognized.
	KindTransport ErrorKind = iota
	// KindNotFound means the target is already gone (message deleted,
	// user left the chat).
	KindNotFound
	// KindPermissionDenied means the bot lacks the rights to act.
	KindPermissionDenied
	// KindRateLimited means the provider asked us to slow down.
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "transport"
	}
}

// APIError is a classified provider error. RetryAfter is non-zero only
// for KindRateLimited, holding the server-suggested delay.
type APIError struct {
	Kind       ErrorKind
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: %s: %v", e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// AsAPIError extracts the classified error, defaulting to transport so
// callers always have a kind to branch on.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindTransport, Err: err}
}

// classify maps raw telegram-bot-api errors onto the taxonomy. The v4
// client reports API rejections as tgbotapi.Error carrying only the
// description text (no status code), so recognition is by message;
// anything that is not a tgbotapi.Error is a transport problem.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var tgErr tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return &APIError{Kind: KindTransport, Err: err}
	}

	msg := strings.ToLower(tgErr.Message)
	switch {
	case tgErr.RetryAfter > 0, strings.Contains(msg, "too many requests"):
		return &APIError{
			Kind:       KindRateLimited,
			RetryAfter: time.Duration(tgErr.RetryAfter) * time.Second,
			Err:        err,
		}
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "user_not_participant"):
		return &APIError{Kind: KindNotFound, Err: err}
	case strings.HasPrefix(msg, "forbidden"),
		strings.Contains(msg, "not enough rights"),
		strings.Contains(msg, "chat_admin_required"),
		strings.Contains(msg, "can't be deleted"),
		strings.Contains(msg, "user is an administrator"):
		return &APIError{Kind: KindPermissionDenied, Err: err}
	default:
		return &APIError{Kind: KindTransport, Err: err}
	}
}
