package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeCursorToken creates a token pointing just past lastID, which sat at position offset-1
// of the listing when the page was produced.
func EncodeCursorToken(offset int, lastID string) string {
	return EncodeMultiFieldToken(strconv.Itoa(offset), lastID)
}

// DecodeCursorToken parses a token produced by EncodeCursorToken.
func DecodeCursorToken(token string) (int, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, "", err
	}
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset < 0 {
		return 0, "", fmt.Errorf("invalid pagination token format (offset parse): %q", parts[0])
	}
	return offset, parts[1], nil
}

// ResumeIndex returns where the next page starts in ids. It resumes right after lastID when
// it is still listed, which keeps paging stable when earlier entries drop out; otherwise it
// falls back to the recorded offset, clamped to the listing.
func ResumeIndex(ids []string, offset int, lastID string) int {
	if lastID != "" {
		for i, id := range ids {
			if id == lastID {
				return i + 1
			}
		}
	}
	if offset > len(ids) {
		return len(ids)
	}
	return offset
}
