package core

import (
	"encoding/json"
	"sort"
)

type ListType byte

const (
	_                  = iota
	Following ListType = iota
	Followers ListType = iota
)

func (lt ListType) String() string {
	return GetListTypeDescription(lt)
}

// Document is one uploaded export file.
type Document struct {
	Name string
	Data []byte
}

// StringListItem also carries href and timestamp in exports; they are not decoded.
type StringListItem struct {
	Value *string `json:"value"`
}

type RelationshipEntry struct {
	Title          string           `json:"title,omitempty"`
	StringListData []StringListItem `json:"string_list_data"`
}

// FollowingContainer is the top level of following.json. Entries are kept raw
// so that decode errors can name the offending entry.
type FollowingContainer struct {
	RelationshipsFollowing json.RawMessage `json:"relationships_following"`
}

// Username is always stored in normalized form, see NormalizeUsername.
type Username string

type UserSet struct {
	m map[Username]struct{}
}

func NewUserSet(names ...string) UserSet {
	set := UserSet{m: make(map[Username]struct{}, len(names))}

	for _, name := range names {
		set.Add(name)
	}

	return set
}

// Add normalizes raw and inserts it. Blank names are ignored.
func (s *UserSet) Add(raw string) bool {
	username := NormalizeUsername(raw)
	if username == "" {
		return false
	}

	if s.m == nil {
		s.m = make(map[Username]struct{})
	}

	s.m[username] = struct{}{}

	return true
}

func (s UserSet) Has(username Username) bool {
	_, ok := s.m[username]
	return ok
}

func (s UserSet) Len() int {
	return len(s.m)
}

func (s *UserSet) Union(other UserSet) {
	if s.m == nil {
		s.m = make(map[Username]struct{}, len(other.m))
	}

	for k := range other.m {
		s.m[k] = struct{}{}
	}
}

// Difference returns every username in s that is not present in other.
func (s UserSet) Difference(other UserSet) UserSet {
	diff := UserSet{m: make(map[Username]struct{})}

	for k := range s.m {
		if !other.Has(k) {
			diff.m[k] = struct{}{}
		}
	}

	return diff
}

// Sorted returns the members in ascending lexicographic order.
func (s UserSet) Sorted() []string {
	users := make([]string, 0, len(s.m))

	for k := range s.m {
		users = append(users, string(k))
	}

	sort.Strings(users)

	return users
}
