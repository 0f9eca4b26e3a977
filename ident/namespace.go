package ident

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrBlankName is returned when declaring a variable without a name.
var ErrBlankName = errors.New("variable name is required")

// Namespace hands out pairwise-distinct tags for named variables.
// A new namespace already holds the pre-defined tags A to Z; further
// names are allocated the next unused index.
//
// A Namespace is safe for concurrent use.
type Namespace struct {
	mu   sync.RWMutex
	tags map[string]Tag
	next uint
}

// NewNamespace returns a namespace holding the pre-defined letter tags.
func NewNamespace() *Namespace {
	ns := &Namespace{
		tags: make(map[string]Tag, len(Letters)),
	}
	for _, t := range Letters {
		ns.tags[t.Name] = t
	}
	ns.next = uint(len(Letters))
	return ns
}

// Declare returns the tag for the name, allocating one if the name has not
// been declared before.
func (ns *Namespace) Declare(name string) (Tag, error) {
	if len(strings.TrimSpace(name)) == 0 {
		return Tag{}, ErrBlankName
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if t, ok := ns.tags[name]; ok {
		return t, nil
	}
	t := NewTag(name, ns.next)
	ns.next++
	ns.tags[name] = t
	return t, nil
}

// MustDeclare is like Declare but panics if the name is blank.
func (ns *Namespace) MustDeclare(name string) Tag {
	t, err := ns.Declare(name)
	if err != nil {
		panic(fmt.Sprintf("ident: declaring %q: %v", name, err))
	}
	return t
}

// Lookup returns the tag declared for the name.
func (ns *Namespace) Lookup(name string) (Tag, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	t, ok := ns.tags[name]
	return t, ok
}

// Len is the number of names in the namespace.
func (ns *Namespace) Len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.tags)
}

// Names returns the declared names in alphabetical order.
func (ns *Namespace) Names() []string {
	ns.mu.RLock()
	names := make([]string, 0, len(ns.tags))
	for k := range ns.tags {
		names = append(names, k)
	}
	ns.mu.RUnlock()

	sort.Strings(names)
	return names
}
