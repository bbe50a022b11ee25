package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+$`)

// ValidateEmail validates an email address the way an email input does:
// a local part, an @ and a domain, without requiring a dotted domain
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// EmailLocalPart returns what precedes the first @, used as a display name
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// DisplayName turns "firstname.lastname@host" into "firstname lastname"
func DisplayName(email string) string {
	return strings.Join(strings.Split(EmailLocalPart(email), "."), " ")
}
