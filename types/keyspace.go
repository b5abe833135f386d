package types

import (
	"errors"
	"fmt"
)

// Keyspace maps a logical alias to a physical keyspace name.
type Keyspace struct {
	// Alias is the name callers use, e.g. "default".
	Alias string `yaml:"alias" json:"alias"`

	// Name is the physical keyspace name in the cluster.
	Name string `yaml:"name" json:"name"`
}

// KeyspaceTable is an ordered, immutable mapping from alias to physical keyspace.
//
// The zero value is an empty table. Use NewKeyspaceTable to build one.
type KeyspaceTable struct {
	entries []Keyspace
	index   map[string]int
}

// NewKeyspaceTable builds a table from alias/name pairs, keeping their order.
//
// Parameters:
//   - entries: Alias to keyspace pairs
//
// Returns:
//   - KeyspaceTable: The immutable table
//   - error: Error if an alias is empty or duplicated, or a name is not a CQL identifier
func NewKeyspaceTable(entries ...Keyspace) (KeyspaceTable, error) {
	t := KeyspaceTable{
		entries: make([]Keyspace, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if e.Alias == "" {
			return KeyspaceTable{}, errors.New("keyspace: keyspace alias cannot be empty")
		}
		if _, dup := t.index[e.Alias]; dup {
			return KeyspaceTable{}, fmt.Errorf("keyspace: duplicate keyspace alias %q", e.Alias)
		}
		if !ValidIdentifier(e.Name) {
			return KeyspaceTable{}, fmt.Errorf("%w: keyspace %q for alias %q", ErrInvalidIdentifier, e.Name, e.Alias)
		}

		t.index[e.Alias] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// MustKeyspaceTable is like NewKeyspaceTable but panics on error.
func MustKeyspaceTable(entries ...Keyspace) KeyspaceTable {
	t, err := NewKeyspaceTable(entries...)
	if err != nil {
		panic(err)
	}

	return t
}

// Lookup returns the physical keyspace name for an alias.
func (t KeyspaceTable) Lookup(alias string) (string, bool) {
	i, ok := t.index[alias]
	if !ok {
		return "", false
	}

	return t.entries[i].Name, true
}

// Has reports whether the alias is configured.
func (t KeyspaceTable) Has(alias string) bool {
	_, ok := t.index[alias]
	return ok
}

// Len returns the number of configured aliases.
func (t KeyspaceTable) Len() int {
	return len(t.entries)
}

// Aliases returns the configured aliases in declaration order.
func (t KeyspaceTable) Aliases() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Alias
	}

	return out
}

// Entries returns a copy of the alias/name pairs in declaration order.
func (t KeyspaceTable) Entries() []Keyspace {
	out := make([]Keyspace, len(t.entries))
	copy(out, t.entries)

	return out
}
