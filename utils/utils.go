package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func IsDuplicateKey(err error) bool {
	// Preferred: typed error
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			log.Println("Error code", e.Code)
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Sometimes we might get a BulkWriteException
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Fallback
	msg := err.Error()
	return strings.Contains(msg, "E11000 duplicate key error")
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FoldName lowercases a name and strips accent marks so that a search for
// "beyonce" matches "Beyoncé".
func FoldName(name string) string {
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // remove accent marks
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// SearchRegex turns a free-text query into a case-insensitive regex source
// with metacharacters neutralized and accents folded.
func SearchRegex(q string) string {
	folded := FoldName(strings.TrimSpace(q))
	folded = nonAlnum.ReplaceAllString(folded, " ")
	parts := strings.Fields(folded)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, ".*")
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func ParseBoolQuery(value string) (*bool, error) {
	if value == "" {
		return nil, nil // not provided
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ParseLimitOffset reads the list-pagination query parameters. Defaults are
// limit=5 offset=0, non-numeric or negative values are an error, and the
// limit is clamped to READ_QUERY_MAX_LIMIT.
func ParseLimitOffset(limitStr, offsetStr string) (int64, int64, error) {
	limit := int64(5)
	offset := int64(0)

	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", limitStr)
		}
		limit = int64(n)
	}
	if offsetStr != "" {
		n, err := strconv.Atoi(offsetStr)
		if err != nil || n < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", offsetStr)
		}
		offset = int64(n)
	}

	maxLimit := int64(ParseIntDefault(os.Getenv("READ_QUERY_MAX_LIMIT"), 100))
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, offset, nil
}

// JWTSecret reads the signing secret from the environment.
func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AccessTTL is the access-token validity window, one hour by default.
func AccessTTL() time.Duration {
	min, _ := strconv.Atoi(os.Getenv("ACCESS_TOKEN_TTL_MINUTES"))
	if min <= 0 {
		min = 60
	}
	return time.Duration(min) * time.Minute
}
