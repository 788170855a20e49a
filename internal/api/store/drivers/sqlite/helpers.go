package sqlite

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
)

// requireAffected turns a zero-row UPDATE/DELETE into ErrNotFound so
// services can report missing targets instead of silently succeeding.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Roles are stored space-joined; list and map columns are stored as JSON
// text. Decode helpers swallow malformed stored values into empty values
// rather than failing reads.

func joinRoles(roles []string) string {
	return strings.Join(roles, " ")
}

func splitRoles(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Fields(s)
}

func encodeStrings(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeStrings(s string) []string {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return []string{}
	}
	return v
}

func encodeBuckets(v map[string]int) string {
	if v == nil {
		v = map[string]int{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeBuckets(s string) map[string]int {
	var v map[string]int
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return map[string]int{}
	}
	return v
}

func encodeInfo(info domain.CustomerInfo) string {
	b, _ := json.Marshal(info)
	return string(b)
}

func decodeInfo(s string) domain.CustomerInfo {
	var info domain.CustomerInfo
	_ = json.Unmarshal([]byte(s), &info)
	return info
}

// placeholders returns "?, ?, ..." with n slots, for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
