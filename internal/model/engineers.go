package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// EngineerNames is the free-text list of engineers attached to an
// allocation. There is no Engineer entity; names are plain strings with no
// referential integrity. This type is the single place that knows the
// comma-delimited storage form, so introducing a real Engineer entity later
// only touches this boundary.
type EngineerNames []string

// ParseEngineerNames splits a delimited name list, dropping blanks.
func ParseEngineerNames(raw string) EngineerNames {
	if strings.TrimSpace(raw) == "" {
		return EngineerNames{}
	}
	parts := strings.Split(raw, ",")
	names := make(EngineerNames, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// String serializes back to the delimited storage form.
func (n EngineerNames) String() string {
	return strings.Join(n, ", ")
}

// Scan implements sql.Scanner.
func (n *EngineerNames) Scan(src interface{}) error {
	if src == nil {
		*n = EngineerNames{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("EngineerNames.Scan: unsupported type %T", src)
	}
	*n = ParseEngineerNames(raw)
	return nil
}

// Value implements driver.Valuer.
func (n EngineerNames) Value() (driver.Value, error) {
	return n.String(), nil
}
