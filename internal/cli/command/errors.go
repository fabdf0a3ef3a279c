package command

import (
	"fmt"
	"strings"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// Messages for session problems in single-command mode.
const (
	notLoggedInMessage    = "not logged in; run 'shurlty-cli login'"
	sessionExpiredMessage = "session expired; run 'shurlty-cli login'"
)

// failure is a command error whose text is the message a form shows,
// keeping the underlying error for errors.Is.
type failure struct {
	msg string
	err error
}

func (e *failure) Error() string { return e.msg }

func (e *failure) Unwrap() error { return e.err }

func fail(msg string, err error) error {
	return &failure{msg: msg, err: err}
}

// sessionError reports a request that ended with the session cleared.
// Otherwise it returns msg.
func sessionError(env *Env, msg string, err error) error {
	if env.Router.Path() == domain.RouteLogin {
		return fail(sessionExpiredMessage, err)
	}
	return fail(msg, err)
}

// ErrorText renders a command error for the terminal. Errors caused by a
// DomainError lead with its code, as in "[SH-VAL-4000] Invalid URL format.".
func ErrorText(err error) string {
	msg := err.Error()
	if de, ok := err.(*domain.DomainError); ok {
		msg = de.Message
	}
	code := domain.GetErrorCode(err)
	if code == "" || strings.Contains(msg, "["+code+"]") {
		return msg
	}
	return fmt.Sprintf("[%s] %s", code, msg)
}
