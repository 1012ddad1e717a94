package utils

import (
	"regexp"
	"strings"
)

// MinPasswordLength is the registration password policy. Login never checks it.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var difficulties = []string{"Easy", "Medium", "Hard"}

// Validation messages returned to clients.
const (
	MsgNameRequired      = "Name is required"
	MsgEmailInvalid      = "Valid email is required"
	MsgPasswordTooShort  = "Password must be at least 6 characters"
	MsgPasswordRequired  = "Password is required"
	MsgTitleRequired     = "Title is required"
	MsgDifficultyInvalid = "Difficulty must be one of: Easy, Medium, Hard"
	MsgTopicNameRequired = "Topic name is required"
)

// ValidationResult collects every failing field instead of stopping at the first.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *ValidationResult) add(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// Message joins the errors into the single message sent to clients.
func (r ValidationResult) Message() string {
	return strings.Join(r.Errors, ", ")
}

func newResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: []string{}}
}

// IsValidEmail checks the simple local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidDifficulty reports whether d is one of the accepted values. Case-sensitive.
func IsValidDifficulty(d string) bool {
	for _, v := range difficulties {
		if d == v {
			return true
		}
	}
	return false
}

func ValidateRegisterInput(name, email, password string) ValidationResult {
	r := newResult()
	if strings.TrimSpace(name) == "" {
		r.add(MsgNameRequired)
	}
	if !IsValidEmail(strings.TrimSpace(email)) {
		r.add(MsgEmailInvalid)
	}
	if len(password) < MinPasswordLength {
		r.add(MsgPasswordTooShort)
	}
	return r
}

func ValidateLoginInput(email, password string) ValidationResult {
	r := newResult()
	if !IsValidEmail(strings.TrimSpace(email)) {
		r.add(MsgEmailInvalid)
	}
	if password == "" {
		r.add(MsgPasswordRequired)
	}
	return r
}

func ValidateProblemInput(title, difficulty string) ValidationResult {
	r := newResult()
	if strings.TrimSpace(title) == "" {
		r.add(MsgTitleRequired)
	}
	if !IsValidDifficulty(difficulty) {
		r.add(MsgDifficultyInvalid)
	}
	return r
}

// ValidateProblemUpdate applies the create rules to the fields that are present.
func ValidateProblemUpdate(title, difficulty *string) ValidationResult {
	r := newResult()
	if title != nil && strings.TrimSpace(*title) == "" {
		r.add(MsgTitleRequired)
	}
	if difficulty != nil && !IsValidDifficulty(*difficulty) {
		r.add(MsgDifficultyInvalid)
	}
	return r
}

func ValidateTopicInput(name string) ValidationResult {
	r := newResult()
	if strings.TrimSpace(name) == "" {
		r.add(MsgTopicNameRequired)
	}
	return r
}

// ValidateTopicUpdate rejects blanking the name; other fields are free-form.
func ValidateTopicUpdate(name *string) ValidationResult {
	if name == nil {
		return newResult()
	}
	return ValidateTopicInput(*name)
}

// ValidateProfileName rejects blanking the display name through a profile update.
func ValidateProfileName(name *string) ValidationResult {
	r := newResult()
	if name != nil && strings.TrimSpace(*name) == "" {
		r.add(MsgNameRequired)
	}
	return r
}
