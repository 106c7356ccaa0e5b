package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

const defaultMaxEntries = 200

type Entry struct {
	ID       string             `json:"id"`
	ParsedAt time.Time          `json:"parsedAt"`
	Method   string             `json:"method"`
	URL      string             `json:"url"`
	Warnings []curl.WarningCode `json:"warnings,omitempty"`
	Result   *curl.Result       `json:"result"`
}

// NewEntry snapshots a parse result under a fresh random ID.
func NewEntry(res *curl.Result, at time.Time) Entry {
	entry := Entry{
		ID:       uuid.NewString(),
		ParsedAt: at.UTC(),
		Result:   res,
	}
	if res == nil {
		return entry
	}
	if res.Request != nil {
		entry.Method = res.Request.Method
		entry.URL = res.Request.URL
	}
	for _, w := range res.Warnings {
		entry.Warnings = append(entry.Warnings, w.Code)
	}
	return entry
}

type Store struct {
	path       string
	maxEntries int
	entries    []Entry
	mu         sync.RWMutex
	loaded     bool
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.entries = append([]Entry{entry}, s.entries...)
	s.sortEntriesLocked()
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}

	if err := s.persist(); err != nil {
		return err
	}
	return nil
}

func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copies := make([]Entry, len(s.entries))
	copy(copies, s.entries)
	return copies
}

func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return false, err
	}

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	copy(s.entries[idx:], s.entries[idx+1:])
	s.entries = s.entries[:len(s.entries)-1]

	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// ByURL returns entries whose URL matches rawURL, ignoring surrounding
// whitespace and a trailing slash. A blank URL returns everything.
func (s *Store) ByURL(rawURL string) []Entry {
	want := normalizeURL(rawURL)
	if want == "" {
		return s.Entries()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Entry
	for _, entry := range s.entries {
		if normalizeURL(entry.URL) == want {
			matched = append(matched, entry)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return newerFirst(matched[i], matched[j])
	})
	return matched
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create history dir")
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "encode history")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write history tmp")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace history file")
	}

	return nil
}

func (s *Store) sortEntriesLocked() {
	if len(s.entries) < 2 {
		return
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		return newerFirst(s.entries[i], s.entries[j])
	})
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = []Entry{}
			s.loaded = true
			return nil
		}
		return errdef.Wrap(errdef.CodeHistory, err, "read history")
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		s.entries = []Entry{}
		s.loaded = true
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "parse history")
	}

	s.sortEntriesLocked()
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	s.loaded = true
	return nil
}

func normalizeURL(v string) string {
	return strings.TrimSuffix(strings.TrimSpace(v), "/")
}

// newerFirst orders by parse time, newest first. Entries without a time sink
// to the end; ties keep insertion order.
func newerFirst(a, b Entry) bool {
	ai := a.ParsedAt
	bi := b.ParsedAt
	switch {
	case ai.IsZero() && bi.IsZero():
		return false
	case ai.IsZero():
		return false
	case bi.IsZero():
		return true
	default:
		return ai.After(bi)
	}
}
