package datasync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Tao1925/poc-web/internal/common"
)

// Document is the desired state of one run. Slice order is significant:
// a chapter's index is its identity and a question's index inside its
// chapter drives its number.
type Document struct {
	Users    []DesiredUser
	Chapters []DesiredChapter
}

type DesiredUser struct {
	Username string
	Password string
}

type DesiredChapter struct {
	Title     string
	Questions []DesiredQuestion
}

type DesiredQuestion struct {
	Title       string
	Description string
	TotalScore  float64
}

// ParseDocument decodes a desired-state document.
//
// The decoder is lenient about shape: a root that is not an object, or
// "users"/"chapters" members that are not arrays, yield empty lists. Users
// without a non-blank username are dropped and a repeated username keeps its
// first position but takes the last password. Only malformed or empty JSON
// is rejected, with common.ErrParse.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", common.ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", common.ErrParse)
	}

	obj, _ := root.(map[string]any)
	doc := &Document{
		Users:    parseUsers(obj["users"]),
		Chapters: parseChapters(obj["chapters"]),
	}
	return doc, nil
}

func parseUsers(v any) []DesiredUser {
	items, _ := v.([]any)

	var out []DesiredUser
	pos := make(map[string]int)
	for _, item := range items {
		u, _ := item.(map[string]any)
		username, ok := text(u["username"])
		if !ok || strings.TrimSpace(username) == "" {
			continue
		}
		password, _ := text(u["password"])

		if i, seen := pos[username]; seen {
			out[i].Password = password
			continue
		}
		pos[username] = len(out)
		out = append(out, DesiredUser{Username: username, Password: password})
	}
	return out
}

func parseChapters(v any) []DesiredChapter {
	items, _ := v.([]any)

	out := make([]DesiredChapter, 0, len(items))
	for _, item := range items {
		c, _ := item.(map[string]any)
		title, _ := text(c["title"])
		out = append(out, DesiredChapter{
			Title:     title,
			Questions: parseQuestions(c["questions"]),
		})
	}
	return out
}

func parseQuestions(v any) []DesiredQuestion {
	items, _ := v.([]any)

	out := make([]DesiredQuestion, 0, len(items))
	for _, item := range items {
		q, _ := item.(map[string]any)
		title, _ := text(q["title"])
		description, _ := text(q["description"])
		out = append(out, DesiredQuestion{
			Title:       title,
			Description: description,
			TotalScore:  number(q["total_score"]),
		})
	}
	return out
}

// text renders a scalar JSON value as a string. Objects, arrays, null and
// absent members report ok=false and an empty string.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// number converts a JSON value to a score. Numeric strings are accepted;
// anything else is 0.
func number(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}
