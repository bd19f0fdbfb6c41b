package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrNotArray     = errors.New("expected a JSON array")
	ErrNotObject    = errors.New("expected a JSON object")
	ErrMissingValue = errors.New("string_list_data[0] has no value")
)

var (
	jsonNull = []byte("null")
	utf8BOM  = []byte("\xef\xbb\xbf")
)

// ExtractFollowers unions the usernames of every followers document. A
// followers document is a bare array of relationship entries.
func ExtractFollowers(docs []Document) (UserSet, error) {
	users := NewUserSet()

	for i, doc := range docs {
		entries, err := decodeEntries(trimDocument(doc.Data))
		if err != nil {
			return UserSet{}, newParseError(Followers, i, doc, err)
		}

		if err := addEntries(&users, Followers, i, doc, entries); err != nil {
			return UserSet{}, err
		}
	}

	return users, nil
}

// ExtractFollowing unions the usernames of every following document. A
// following document wraps its entries under "relationships_following"; a
// document without that key contributes nothing.
func ExtractFollowing(docs []Document) (UserSet, error) {
	users := NewUserSet()

	for i, doc := range docs {
		data := trimDocument(doc.Data)

		if bytes.Equal(data, jsonNull) {
			return UserSet{}, newParseError(Following, i, doc, ErrNotObject)
		}

		var container FollowingContainer

		if err := json.Unmarshal(data, &container); err != nil {
			return UserSet{}, newParseError(Following, i, doc, shapeError(err, ErrNotObject))
		}

		if container.RelationshipsFollowing == nil {
			continue
		}

		entries, err := decodeEntries(container.RelationshipsFollowing)
		if err != nil {
			return UserSet{}, newParseError(Following, i, doc, err)
		}

		if err := addEntries(&users, Following, i, doc, entries); err != nil {
			return UserSet{}, err
		}
	}

	return users, nil
}

func addEntries(users *UserSet, listType ListType, index int, doc Document, entries []json.RawMessage) error {
	for n, raw := range entries {
		username, err := entryUsername(raw)
		if err != nil {
			pe := newParseError(listType, index, doc, err)
			pe.Entry = n
			return pe
		}

		users.Add(username)
	}

	return nil
}

// entryUsername returns the first string_list_data value of an entry, or ""
// when the entry has no string_list_data.
func entryUsername(raw json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return "", ErrNotObject
	}

	var entry RelationshipEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", shapeError(err, ErrNotObject)
	}

	if len(entry.StringListData) == 0 {
		return "", nil
	}

	first := entry.StringListData[0]
	if first.Value != nil {
		return *first.Value, nil
	}

	// Newer exports carry the username in the entry title instead.
	if strings.TrimSpace(entry.Title) != "" {
		return entry.Title, nil
	}

	return "", ErrMissingValue
}

func decodeEntries(data []byte) ([]json.RawMessage, error) {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil, ErrNotArray
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, shapeError(err, ErrNotArray)
	}

	return entries, nil
}

// shapeError replaces a top-level type mismatch with want, keeping syntax and
// nested field errors as they are.
func shapeError(err error, want error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "" {
		return want
	}

	return err
}

func trimDocument(data []byte) []byte {
	return bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
}

func newParseError(listType ListType, index int, doc Document, err error) *ParseError {
	return &ParseError{
		List:     listType,
		Document: doc.Name,
		Index:    index,
		Entry:    -1,
		Err:      err,
	}
}
