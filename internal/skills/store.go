// Package skills holds the editable skills list: an ordered label store and
// the row view that sequences edits and animated removals on top of it.
package skills

import (
	"fmt"
	"strings"
)

// Store is an ordered list of skill labels. It is not safe for concurrent
// use; the owner serializes access (see dispatch.Loop).
type Store struct {
	labels []string
}

// NewStore seeds a store through Add, so the seed obeys the same rules as
// user input.
func NewStore(seed []string) (*Store, error) {
	s := &Store{}
	for _, label := range seed {
		if _, err := s.Add(label); err != nil {
			return nil, fmt.Errorf("seed skills: %w", err)
		}
	}
	return s, nil
}

// Add trims label and appends it. It returns the stored label.
func (s *Store) Add(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrEmptyInput
	}
	if s.Contains(label) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateSkill, label)
	}
	s.labels = append(s.labels, label)
	return label, nil
}

// Update replaces the label at pos. Blank or unchanged input is a no-op and
// reports changed=false. No duplicate check is made here.
func (s *Store) Update(pos int, label string) (changed bool, err error) {
	if err := s.check(pos); err != nil {
		return false, err
	}
	label = strings.TrimSpace(label)
	if label == "" || label == s.labels[pos] {
		return false, nil
	}
	s.labels[pos] = label
	return true, nil
}

// RemoveAt deletes the label at pos and returns it.
func (s *Store) RemoveAt(pos int) (string, error) {
	if err := s.check(pos); err != nil {
		return "", err
	}
	label := s.labels[pos]
	s.labels = append(s.labels[:pos], s.labels[pos+1:]...)
	return label, nil
}

// At returns the label at pos.
func (s *Store) At(pos int) (string, error) {
	if err := s.check(pos); err != nil {
		return "", err
	}
	return s.labels[pos], nil
}

// Contains reports whether label matches an entry, ignoring case.
func (s *Store) Contains(label string) bool {
	for _, existing := range s.labels {
		if strings.EqualFold(existing, label) {
			return true
		}
	}
	return false
}

func (s *Store) Len() int {
	return len(s.labels)
}

// Labels returns a copy of the current order.
func (s *Store) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *Store) check(pos int) error {
	if pos < 0 || pos >= len(s.labels) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, pos, len(s.labels))
	}
	return nil
}
