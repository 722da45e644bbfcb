package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AccessLevel is the stored privilege of a user. It is persisted but never enforced.
type AccessLevel string

const (
	AccessLevelUser       AccessLevel = "USER"
	AccessLevelAdmin      AccessLevel = "ADMIN"
	AccessLevelSuperAdmin AccessLevel = "SUPER_ADMIN"
)

// Valid reports whether a is one of the declared access levels.
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessLevelUser, AccessLevelAdmin, AccessLevelSuperAdmin:
		return true
	}
	return false
}

func (a *AccessLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("access level must be a string: %w", err)
	}
	return a.set(s)
}

func (a *AccessLevel) Scan(value any) error {
	s, err := scanString(value)
	if err != nil {
		return err
	}
	return a.set(s)
}

func (a AccessLevel) Value() (driver.Value, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid access level %q", string(a))
	}
	return string(a), nil
}

func (a *AccessLevel) set(s string) error {
	level := AccessLevel(s)
	if !level.Valid() {
		return fmt.Errorf("invalid access level %q", s)
	}
	*a = level
	return nil
}

// DifficultyLevel grades how hard a recipe is to cook.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d *DifficultyLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("difficulty level must be a string: %w", err)
	}
	return d.set(s)
}

func (d *DifficultyLevel) Scan(value any) error {
	s, err := scanString(value)
	if err != nil {
		return err
	}
	return d.set(s)
}

func (d DifficultyLevel) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty level %q", string(d))
	}
	return string(d), nil
}

func (d *DifficultyLevel) set(s string) error {
	level := DifficultyLevel(s)
	if !level.Valid() {
		return fmt.Errorf("invalid difficulty level %q", s)
	}
	*d = level
	return nil
}

func scanString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into an enum", value)
	}
}
