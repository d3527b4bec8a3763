package datasync

import (
	"strings"

	"github.com/Tao1925/poc-web/internal/server/models"
)

// Strategy says how a desired entry is matched to a persisted record.
type Strategy int

const (
	// ByNaturalKey matches on a field chosen by the document author.
	ByNaturalKey Strategy = iota
	// ByPosition matches on the entry's 1-based index in its list.
	ByPosition
)

func (s Strategy) String() string {
	switch s {
	case ByNaturalKey:
		return "natural-key"
	case ByPosition:
		return "position"
	default:
		return "unknown"
	}
}

// Identity describes how records of type T are keyed. Key reports ok=false
// for records that can never be matched (null or blank key); such records
// are always orphans.
type Identity[T any, K comparable] struct {
	Field    string
	Strategy Strategy
	Key      func(T) (K, bool)
}

var (
	UserIdentity = Identity[*models.User, string]{
		Field:    "username",
		Strategy: ByNaturalKey,
		Key: func(u *models.User) (string, bool) {
			return u.Username, strings.TrimSpace(u.Username) != ""
		},
	}

	ChapterIdentity = Identity[*models.Chapter, int]{
		Field:    "sort_order",
		Strategy: ByPosition,
		Key: func(c *models.Chapter) (int, bool) {
			if !c.SortOrder.Valid {
				return 0, false
			}
			return int(c.SortOrder.Int64), true
		},
	}

	// Question titles are global: a question keeps its record when it moves
	// to another chapter.
	QuestionIdentity = Identity[*models.Question, string]{
		Field:    "title",
		Strategy: ByNaturalKey,
		Key: func(q *models.Question) (string, bool) {
			return q.Title, strings.TrimSpace(q.Title) != ""
		},
	}
)

// lookup is the per-run table used to decide reuse vs create. It lives for a
// single reconciliation and is never shared.
type lookup[T any, K comparable] struct {
	identity Identity[T, K]
	existing []T
	byKey    map[K]T
	claimed  map[K]struct{}
}

// newLookup indexes records by identity. When two records share a key the
// first one wins; the other stays reachable only through orphans.
func newLookup[T any, K comparable](identity Identity[T, K], records []T) *lookup[T, K] {
	l := &lookup[T, K]{
		identity: identity,
		existing: records,
		byKey:    make(map[K]T, len(records)),
		claimed:  make(map[K]struct{}),
	}
	for _, r := range records {
		k, ok := identity.Key(r)
		if !ok {
			continue
		}
		if _, dup := l.byKey[k]; !dup {
			l.byKey[k] = r
		}
	}
	return l
}

// resolve returns the record currently bound to key.
func (l *lookup[T, K]) resolve(key K) (T, bool) {
	r, ok := l.byKey[key]
	return r, ok
}

// claim marks key as present in the desired state.
func (l *lookup[T, K]) claim(key K) {
	l.claimed[key] = struct{}{}
}

// register binds a record created during the run, so later desired entries
// with the same key update it instead of creating another one.
func (l *lookup[T, K]) register(r T) {
	if k, ok := l.identity.Key(r); ok {
		l.byKey[k] = r
	}
}

// orphans lists pre-existing records whose key is missing or unclaimed, in
// load order.
func (l *lookup[T, K]) orphans() []T {
	var out []T
	for _, r := range l.existing {
		k, ok := l.identity.Key(r)
		if !ok {
			out = append(out, r)
			continue
		}
		if _, claimed := l.claimed[k]; !claimed {
			out = append(out, r)
		}
	}
	return out
}
