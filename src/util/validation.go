package util

import (
	"math"
	"regexp"
	"strings"

	"expensy-server/src/models"
)

const MinPasswordLength = 6

// MaxAmount bounds transaction and budget amounts so that totals stay finite.
const MaxAmount = 1e12

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violated rule of one request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister trims and normalizes req in place.
func ValidateRegister(req *models.RegisterRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = NormalizeEmail(req.Email)

	var errs ValidationErrors
	if req.FullName == "" {
		errs.add("fullName", "Full name is required")
	}
	if req.Email == "" {
		errs.add("email", "Email is required")
	} else if !ValidateEmail(req.Email) {
		errs.add("email", "Email is invalid")
	}
	if req.Password == "" {
		errs.add("password", "Password is required")
	} else if len(req.Password) < MinPasswordLength {
		errs.add("password", "Password must be at least 6 characters")
	}
	return errs.orNil()
}

func ValidateProfileUpdate(req *models.UpdateProfileRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)

	var errs ValidationErrors
	if req.FullName == "" {
		errs.add("fullName", "Full name is required")
	}
	return errs.orNil()
}

func ValidateBudget(req *models.SetBudgetRequest) error {
	var errs ValidationErrors
	switch {
	case req.Amount == nil:
		errs.add("amount", "Amount is required")
	case !isFinite(*req.Amount):
		errs.add("amount", "Amount must be a number")
	case *req.Amount < 0:
		errs.add("amount", "Amount must not be negative")
	case *req.Amount > MaxAmount:
		errs.add("amount", "Amount must not exceed 1000000000000")
	}
	return errs.orNil()
}

// ValidateTransaction trims description and category in place.
func ValidateTransaction(req *models.CreateTransactionRequest) error {
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	var errs ValidationErrors
	if req.Type == "" {
		errs.add("type", "Type is required")
	} else if !req.Type.Valid() {
		errs.add("type", "Type must be income or expense")
	}
	if req.Description == "" {
		errs.add("description", "Description is required")
	}
	if req.Category == "" {
		errs.add("category", "Category is required")
	}
	switch {
	case req.Amount == nil:
		errs.add("amount", "Amount is required")
	case !isFinite(*req.Amount) || *req.Amount <= 0:
		errs.add("amount", "Amount must be greater than 0")
	case *req.Amount > MaxAmount:
		errs.add("amount", "Amount must not exceed 1000000000000")
	}
	return errs.orNil()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
