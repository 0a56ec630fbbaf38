package service

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func normalizeName(s string) string {
	return strings.TrimSpace(s)
}
