package utils

import (
	"strings"

	"github.com/google/uuid"
)

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// IsValidUUID checks the UUID string format.
func IsValidUUID(u string) bool {
	if len(u) != 36 {
		return false
	}
	if u[8] != '-' || u[13] != '-' || u[18] != '-' || u[23] != '-' {
		return false
	}
	return true
}

// SplitTags turns a comma-separated tag string into a clean slice:
// entries are trimmed and empty ones dropped, so "AI, ,Tech," yields
// ["AI","Tech"] and "" yields an empty slice, never [""].
func SplitTags(input string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(input, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
