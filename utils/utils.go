package utils

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gate-dashboard/constants"
	"gate-dashboard/models/user"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\-\s]{6,18}[0-9]$`)

// NormalizeIdentity lowercases and collapses runs of whitespace so that
// " Asha  Rao " and "asha rao" compare equal at the gate.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// IdentityMatches compares a submitted identity value against the recorded
// one. An empty recorded value never matches: a pass without a customer name
// cannot be verified by name.
func IdentityMatches(submitted, recorded string) bool {
	normalized := NormalizeIdentity(recorded)
	if normalized == "" {
		return false
	}
	return NormalizeIdentity(submitted) == normalized
}

// IsValidPhone checks the phone shape accepted by the gate registry
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidateStruct runs tag validation and returns the first failure as a
// readable message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("field '%s' failed '%s' validation", f.Field(), f.Tag())
	}
	return err
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues an HS256 JWT for an approved account, embedding the
// department permission grants the middleware checks.
func GenerateToken(u *user.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	claims := jwt.MapClaims{
		"sub":         u.ID,
		"username":    u.Username,
		"department":  u.Department,
		"permissions": constants.PermissionsForDepartment(u.Department),
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
