package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Field rules used by the forms. Every rule here passes on an empty value,
// so pair it with validation.Required when the field is mandatory.

var (
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

const (
	EmailMaxLength    = 254
	PasswordMinLength = 6
	PasswordMaxLength = 128
)

// Phone accepts digits, '+', '-', spaces and parentheses: 0901234567, +84 (90) 123-4567
var Phone = validation.Match(phonePattern).
	Error("Phone number may only contain digits, +, -, spaces and parentheses")

// Email is the format check behind the email field.
var Email = []validation.Rule{
	validation.Length(0, EmailMaxLength).Error(fmt.Sprintf("Email must be at most %d characters", EmailMaxLength)),
	validation.Match(emailPattern).Error("Email is invalid"),
}

// Role accepts any known role name, case-insensitive.
var Role = stringRule("validation_role_invalid", func(s string) string {
	if _, ok := domain.ParseRole(s); !ok {
		return "Role must be one of admin, manager, consultant, staff, customer"
	}
	return ""
})

// Category accepts the numeric id of a known blog category.
var Category = stringRule("validation_category_invalid", func(s string) string {
	id, err := strconv.Atoi(s)
	if err != nil || !domain.Category(id).Valid() {
		return "Category is unknown"
	}
	return ""
})

// ImageURL requires an absolute http(s) link.
var ImageURL = stringRule("validation_image_url_invalid", func(s string) string {
	u, err := url.Parse(s)
	switch {
	case err != nil:
		return "Image URL is not a valid URL"
	case u.Scheme != "http" && u.Scheme != "https":
		return "Image URL must start with http:// or https://"
	case u.Host == "":
		return "Image URL must include a host"
	}
	return ""
})

// Password bounds the length of a new account password, counted in runes.
func Password(minLength int) validation.Rule {
	return stringRule("validation_password_length", func(s string) string {
		n := utf8.RuneCountInString(s)
		if n < minLength {
			return fmt.Sprintf("Password must be at least %d characters", minLength)
		}
		if n > PasswordMaxLength {
			return fmt.Sprintf("Password must be at most %d characters", PasswordMaxLength)
		}
		return ""
	})
}

// stringRule turns a check returning a message ("" when valid) into an ozzo rule.
func stringRule(code string, check func(string) string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if msg := check(s); msg != "" {
			return validation.NewError(code, msg)
		}
		return nil
	})
}
