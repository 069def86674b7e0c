// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package store implements git-cl's two persistent JSON documents: the
// active-changelist store (cl.json) and the stashed-changelist store
// (cl-stashes.json), both living under the repository's Git directory.
//
// Loads and saves follow the load/default-if-absent/mutate-in-memory/save
// discipline of checks.Config, retargeted at encoding/json since the wire
// format here is JSON rather than YAML.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	activeFileName  = "cl.json"
	stashedFileName = "cl-stashes.json"
)

// ActiveStore is the in-memory form of cl.json: an insertion-ordered
// mapping of changelist name to its path set. Each path appears in at
// most one changelist (the single-owner invariant), enforced
// by Reassign, not by this type itself.
type ActiveStore struct {
	order   []string
	entries map[string][]string
}

// NewActiveStore returns an empty store.
func NewActiveStore() *ActiveStore {
	return &ActiveStore{entries: map[string][]string{}}
}

// Names returns the changelist names in insertion order.
func (s *ActiveStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether name exists in the store, even with an empty path
// set: empty changelists are retained, not pruned.
func (s *ActiveStore) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Paths returns the path set for name, or nil if name is absent.
func (s *ActiveStore) Paths(name string) []string {
	return s.entries[name]
}

// Owner returns the name of the changelist owning path, or "" if none
// does, implementing the single-owner lookup used by the status model.
func (s *ActiveStore) Owner(path string) string {
	for _, name := range s.order {
		for _, p := range s.entries[name] {
			if p == path {
				return name
			}
		}
	}
	return ""
}

// ensure creates name with an empty path set if absent, preserving
// insertion order.
func (s *ActiveStore) ensure(name string) {
	if _, ok := s.entries[name]; !ok {
		s.entries[name] = []string{}
		s.order = append(s.order, name)
	}
}

// Reassign inserts paths into store[name] (creating name if absent) and
// removes those same paths from every other changelist, preserving the
// single-owner invariant. Paths already owned by name are
// left in place at their existing position; new paths are appended in
// the order given, deduplicated.
func (s *ActiveStore) Reassign(name string, paths []string) {
	s.ensure(name)
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}

	for _, other := range s.order {
		if other == name {
			continue
		}
		s.entries[other] = removeAll(s.entries[other], want)
	}

	existing := make(map[string]bool, len(s.entries[name]))
	for _, p := range s.entries[name] {
		existing[p] = true
	}
	for _, p := range paths {
		if !existing[p] {
			s.entries[name] = append(s.entries[name], p)
			existing[p] = true
		}
	}
}

// Remove deletes paths from store[name], ignoring any path not present.
// The changelist itself is retained even if it becomes empty.
func (s *ActiveStore) Remove(name string, paths []string) {
	if !s.Has(name) {
		return
	}
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[p] = true
	}
	s.entries[name] = removeAll(s.entries[name], drop)
}

// Delete drops name entirely from the store.
func (s *ActiveStore) Delete(name string) bool {
	if !s.Has(name) {
		return false
	}
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Take removes name from the store and returns its path set, used when
// migrating a changelist to the stashed store.
func (s *ActiveStore) Take(name string) ([]string, bool) {
	paths, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	s.Delete(name)
	return cp, true
}

// Put inserts name with paths at the end of insertion order, used when
// restoring a changelist from the stashed store. It overwrites name if
// already present.
func (s *ActiveStore) Put(name string, paths []string) {
	s.ensure(name)
	cp := make([]string, len(paths))
	copy(cp, paths)
	s.entries[name] = cp
}

func removeAll(paths []string, drop map[string]bool) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !drop[p] {
			out = append(out, p)
		}
	}
	return out
}

// MarshalJSON renders the store as a pretty-printed object whose keys
// follow insertion order.
func (s *ActiveStore) MarshalJSON() ([]byte, error) {
	// encoding/json always sorts map keys; building the object by hand is
	// the only way to keep insertion order in the serialized form.
	var buf []byte
	buf = append(buf, '{')
	for i, name := range s.order {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.entries[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON reconstructs the store, recovering key order from the raw
// token stream since Go's map type does not preserve it.
func (s *ActiveStore) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("cl.json: expected object, got %v", tok)
	}
	s.entries = map[string][]string{}
	s.order = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("cl.json: expected string key, got %v", keyTok)
		}
		var paths []string
		if err := dec.Decode(&paths); err != nil {
			return err
		}
		if paths == nil {
			paths = []string{}
		}
		s.entries[name] = paths
		s.order = append(s.order, name)
	}
	return nil
}

// StashedEntry is the serialized form of one stashed changelist.
type StashedEntry struct {
	Paths     []string `json:"paths"`
	StashRef  string   `json:"stash_ref"`
	CreatedAt string   `json:"created_at"`
	FileCount int      `json:"file_count"`
}

// StashedStore is the in-memory form of cl-stashes.json.
type StashedStore struct {
	order   []string
	entries map[string]StashedEntry
}

// NewStashedStore returns an empty store.
func NewStashedStore() *StashedStore {
	return &StashedStore{entries: map[string]StashedEntry{}}
}

// Names returns the stashed changelist names in insertion order.
func (s *StashedStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether name is stashed.
func (s *StashedStore) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Get returns the stashed entry for name.
func (s *StashedStore) Get(name string) (StashedEntry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Put records name as stashed with entry, appending to insertion order if
// new.
func (s *StashedStore) Put(name string, entry StashedEntry) {
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	s.entries[name] = entry
}

// Take removes name from the store and returns its entry, used when
// restoring to the active store.
func (s *StashedStore) Take(name string) (StashedEntry, bool) {
	e, ok := s.entries[name]
	if !ok {
		return StashedEntry{}, false
	}
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return e, true
}

// MarshalJSON preserves insertion order, as ActiveStore.MarshalJSON does.
func (s *StashedStore) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	for i, name := range s.order {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.entries[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON reconstructs the store, recovering key order.
func (s *StashedStore) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("cl-stashes.json: expected object, got %v", tok)
	}
	s.entries = map[string]StashedEntry{}
	s.order = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("cl-stashes.json: expected string key, got %v", keyTok)
		}
		var entry StashedEntry
		if err := dec.Decode(&entry); err != nil {
			return err
		}
		s.entries[name] = entry
		s.order = append(s.order, name)
	}
	return nil
}

// LoadActive loads cl.json from gitDir. A missing file yields an empty
// store, not an error.
func LoadActive(gitDir string) (*ActiveStore, error) {
	s := NewActiveStore()
	if err := load(filepath.Join(gitDir, activeFileName), s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveActive atomically overwrites cl.json with s.
func SaveActive(gitDir string, s *ActiveStore) error {
	return save(gitDir, activeFileName, s)
}

// LoadStashed loads cl-stashes.json from gitDir. A missing file yields an
// empty store, not an error.
func LoadStashed(gitDir string) (*StashedStore, error) {
	s := NewStashedStore()
	if err := load(filepath.Join(gitDir, stashedFileName), s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveStashed atomically overwrites cl-stashes.json with s.
func SaveStashed(gitDir string, s *StashedStore) error {
	return save(gitDir, stashedFileName, s)
}

func load(path string, v json.Unmarshaler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return v.UnmarshalJSON(data)
}

// save writes v to <gitDir>/name using the write-temp-then-rename trick:
// the temp file lives in gitDir so the final rename is same-filesystem
// and atomic.
func save(gitDir, name string, v json.Marshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	var pretty []byte
	pretty, err = prettyPrint(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(gitDir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(pretty); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, filepath.Join(gitDir, name))
}

// prettyPrint re-indents compact JSON to 2 spaces with a trailing newline.
// It reformats the existing byte stream rather than
// round-tripping through a map, which would lose the insertion order
// MarshalJSON took care to preserve.
func prettyPrint(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
