package domain

import (
	"encoding/json"
	"fmt"
)

// NameSet is an ordered set of names with no duplicates
type NameSet []string

// Contains reports whether name is in the set
func (s NameSet) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// With returns a copy of the set including name
func (s NameSet) With(name string) NameSet {
	out := s.Clone()
	if out.Contains(name) {
		return out
	}
	return append(out, name)
}

// Without returns a copy of the set excluding name
func (s NameSet) Without(name string) NameSet {
	out := make(NameSet, 0, len(s))
	for _, n := range s {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns an independent copy, never nil
func (s NameSet) Clone() NameSet {
	out := make(NameSet, len(s))
	copy(out, s)
	return out
}

func (s NameSet) dedupe() NameSet {
	out := make(NameSet, 0, len(s))
	for _, n := range s {
		if n != "" && !out.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// UnmarshalJSON accepts plain strings as well as legacy objects carrying a
// "name" field (older saves stored full event definitions).
func (s *NameSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(NameSet, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("decode set entry %s: %w", string(item), err)
		}
		out = append(out, obj.Name)
	}
	*s = out.dedupe()
	return nil
}
