// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search parses play-by-play queries such as
// `type:steal inning:>=7 -outcome:caught "squeeze"`.
package search

import (
	"strconv"
	"strings"
	"unicode"
)

// Operator compares a filter value with a field.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpRange          Operator = ".." // for inning:7..9
)

// prefixOps is checked in order: two-character operators first.
var prefixOps = []Operator{OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess}

// Filter is one key:value criterion.
type Filter struct {
	Key      string   // e.g., "type", "inning"
	Value    string   // e.g., "steal", "7"
	MaxValue string   // Used only for OpRange
	Operator Operator // e.g., "=", ">="
	Negate   bool     // -key:value
}

// Query is a parsed search query.
type Query struct {
	Filters  []Filter
	FreeText []string
}

// Empty reports whether the query matches everything.
func (q Query) Empty() bool {
	return len(q.Filters) == 0 && len(q.FreeText) == 0
}

// Parse parses a query string. Tokens are split on spaces outside quotes.
// A token with a colon is a filter; its value may carry a comparison
// prefix or an a..b range. Anything else is free text.
func Parse(input string) Query {
	q := Query{
		Filters:  make([]Filter, 0),
		FreeText: make([]string, 0),
	}
	for _, token := range tokenize(input) {
		f, ok := parseFilter(token)
		if !ok {
			q.FreeText = append(q.FreeText, removeQuotes(token))
			continue
		}
		q.Filters = append(q.Filters, f)
	}
	return q
}

func parseFilter(token string) (Filter, bool) {
	key, val, found := strings.Cut(token, ":")
	if !found {
		return Filter{}, false
	}
	f := Filter{Operator: OpEqual}
	if strings.HasPrefix(key, "-") {
		f.Negate = true
		key = key[1:]
	}
	f.Key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)
	if f.Key == "" || val == "" {
		return Filter{}, false
	}
	// An unquoted second colon is ambiguous.
	if strings.Contains(val, ":") && !strings.HasPrefix(val, "\"") && !strings.HasPrefix(val, "'") {
		return Filter{}, false
	}

	if lo, hi, ok := strings.Cut(val, ".."); ok {
		f.Operator = OpRange
		f.Value, f.MaxValue = removeQuotes(lo), removeQuotes(hi)
		return f, true
	}
	for _, op := range prefixOps {
		if rest, ok := strings.CutPrefix(val, string(op)); ok {
			f.Operator = op
			f.Value = removeQuotes(rest)
			return f, true
		}
	}
	f.Value = removeQuotes(val)
	return f, true
}

// MatchString reports whether s satisfies the filter. Text compares
// case-insensitively and only supports equality.
func (f Filter) MatchString(s string) bool {
	ok := f.Operator == OpEqual && strings.EqualFold(s, f.Value)
	return ok != f.Negate
}

// MatchInt reports whether n satisfies the filter. A value that is not a
// number matches nothing.
func (f Filter) MatchInt(n int) bool {
	v, err := strconv.Atoi(f.Value)
	if err != nil {
		return false
	}
	var ok bool
	switch f.Operator {
	case OpEqual:
		ok = n == v
	case OpGreater:
		ok = n > v
	case OpGreaterOrEqual:
		ok = n >= v
	case OpLess:
		ok = n < v
	case OpLessOrEqual:
		ok = n <= v
	case OpRange:
		hi, err := strconv.Atoi(f.MaxValue)
		if err != nil {
			return false
		}
		ok = n >= v && n <= hi
	}
	return ok != f.Negate
}

// tokenize splits the string by spaces, respecting quotes.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	var quote rune

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case r == '"' || r == '\'':
			quote = r
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func removeQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
