// Package validate carries the form rules of the community client: email,
// password, nickname and post fields are checked locally before any request
// reaches the backend.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	PasswordMin = 8
	PasswordMax = 20
	NicknameMax = 10
	TitleMax    = 26
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailFormat      = errors.New("not a valid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordLength   = errors.New("password must be 8 to 20 characters")
	ErrPasswordCharset  = errors.New("password needs upper, lower, digit and special characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNicknameRequired = errors.New("nickname is required")
	ErrNicknameSpaces   = errors.New("nickname cannot contain spaces")
	ErrNicknameLength   = errors.New("nickname must be at most 10 characters")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleLength      = errors.New("title must be at most 26 characters")
	ErrContentRequired  = errors.New("content is required")
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func Email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(s) {
		return ErrEmailFormat
	}
	return nil
}

func Password(s string) error {
	if s == "" {
		return ErrPasswordRequired
	}
	n := utf8.RuneCountInString(s)
	if n < PasswordMin || n > PasswordMax {
		return ErrPasswordLength
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrPasswordCharset
	}
	return nil
}

// PasswordPair checks the confirmation field against the password.
func PasswordPair(password, confirm string) error {
	if err := Password(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func Nickname(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrNicknameRequired
	}
	if strings.ContainsAny(s, " \t") {
		return ErrNicknameSpaces
	}
	if utf8.RuneCountInString(s) > NicknameMax {
		return ErrNicknameLength
	}
	return nil
}

func PostTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(s) > TitleMax {
		return ErrTitleLength
	}
	return nil
}

func PostContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrContentRequired
	}
	return nil
}
