package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrMalformedExpertise marks stored expertise data that could not be decoded.
var ErrMalformedExpertise = errors.New("malformed expertise data")

// NormalizeTag trims and case-folds an interest tag.
func NormalizeTag(tag string) string {
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(tag))
}

// ExpertiseSet is the sorted, de-duplicated set of interest tags a mentor covers.
type ExpertiseSet []string

// NewExpertiseSet builds a set from raw tags. Blank tags are rejected.
func NewExpertiseSet(tags ...string) (ExpertiseSet, error) {
	seen := make(map[string]struct{}, len(tags))
	set := make(ExpertiseSet, 0, len(tags))
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" {
			return nil, fmt.Errorf("expertise tag must not be blank")
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		set = append(set, tag)
	}
	sort.Strings(set)
	return set, nil
}

// Contains reports whether tag, once normalised, is in the set.
func (s ExpertiseSet) Contains(tag string) bool {
	tag = NormalizeTag(tag)
	if tag == "" {
		return false
	}
	i := sort.SearchStrings(s, tag)
	return i < len(s) && s[i] == tag
}

// Validate checks that the set is in the canonical form NewExpertiseSet produces.
func (s ExpertiseSet) Validate() error {
	for i, tag := range s {
		if tag == "" || tag != NormalizeTag(tag) {
			return fmt.Errorf("%w: tag %q is not normalised", ErrMalformedExpertise, tag)
		}
		if i > 0 && s[i-1] >= tag {
			return fmt.Errorf("%w: tags are not a sorted set", ErrMalformedExpertise)
		}
	}
	return nil
}

// Value stores the set as a JSON array in text columns.
func (s ExpertiseSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON array column. Anything else, JSON null included, is
// reported as ErrMalformedExpertise.
func (s *ExpertiseSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrMalformedExpertise, src)
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedExpertise, err)
	}
	if tags == nil {
		return fmt.Errorf("%w: null expertise", ErrMalformedExpertise)
	}
	set, err := NewExpertiseSet(tags...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedExpertise, err)
	}
	*s = set
	return nil
}
