package schedsync

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"unicode/utf16"
)

// IsAllowedFilename reports whether name is one of the documents the gateway
// accepts for upload. Matching is exact and case-sensitive.
func IsAllowedFilename(name string) bool {
	return slices.Contains(AllowedFiles, name)
}

// ContentLength returns the length of s in UTF-16 code units, which is how the
// scheduler client measures document size. For ASCII JSON this equals len(s).
func ContentLength(s string) int {
	n := 0
	for _, r := range s {
		// range yields U+FFFD for invalid bytes, so RuneLen is never -1 here
		n += utf16.RuneLen(r)
	}
	return n
}

// ComputeETag returns the hex SHA256 of body. Every backend tags documents this way.
func ComputeETag(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// ValidateTableName returns an error describing why name cannot be used as a document table.
func ValidateTableName(name string) error {
	if name == "" {
		return errors.New("validate table: table name cannot be empty")
	}

	if !IsValidTableName(name) {
		return fmt.Errorf("validate table: invalid table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", name)
	}

	return nil
}
