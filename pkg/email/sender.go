package email

import (
	"errors"
	"regexp"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use; callers treat delivery failure as non-fatal.
type Sender interface {
	Send(input SendEmailInput) error
}

var emailRegexp = regexp.MustCompile(`^[\w\.\+\-]+@[\w\-]+(\.[\w\-]+)+$`)

func IsEmailValid(email string) bool {
	return emailRegexp.MatchString(email)
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
