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

package search

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Query
	}{
		{
			input: "type:steal",
			expected: Query{
				Filters: []Filter{
					{Key: "type", Value: "steal", Operator: OpEqual},
				},
			},
		},
		{
			input: "batter:\"佐藤 翔\" half:top",
			expected: Query{
				Filters: []Filter{
					{Key: "batter", Value: "佐藤 翔", Operator: OpEqual},
					{Key: "half", Value: "top", Operator: OpEqual},
				},
			},
		},
		{
			input: "inning:>=7 runs:>0 outs:<2 inning:<=9",
			expected: Query{
				Filters: []Filter{
					{Key: "inning", Value: "7", Operator: OpGreaterOrEqual},
					{Key: "runs", Value: "0", Operator: OpGreater},
					{Key: "outs", Value: "2", Operator: OpLess},
					{Key: "inning", Value: "9", Operator: OpLessOrEqual},
				},
			},
		},
		{
			input: "inning:7..9",
			expected: Query{
				Filters: []Filter{
					{Key: "inning", Value: "7", MaxValue: "9", Operator: OpRange},
				},
			},
		},
		{
			input: "-outcome:caught TYPE:Steal",
			expected: Query{
				Filters: []Filter{
					{Key: "outcome", Value: "caught", Operator: OpEqual, Negate: true},
					{Key: "type", Value: "Steal", Operator: OpEqual},
				},
			},
		},
		{
			input: "squeeze \"two words\" type:bunt",
			expected: Query{
				Filters: []Filter{
					{Key: "type", Value: "bunt", Operator: OpEqual},
				},
				FreeText: []string{"squeeze", "two words"},
			},
		},
		{
			input: "broken:range:..",
			expected: Query{
				FreeText: []string{"broken:range:.."},
			},
		},
		{
			input: "type: :steal",
			expected: Query{
				FreeText: []string{"type:", ":steal"},
			},
		},
		{
			input: "batter:\"A:B\"", // Quoted colon -> Filter
			expected: Query{
				Filters: []Filter{
					{Key: "batter", Value: "A:B", Operator: OpEqual},
				},
			},
		},
	}

	for _, tt := range tests {
		got := Parse(tt.input)
		// Helper to compare slices empty vs nil
		if len(got.FreeText) == 0 && len(tt.expected.FreeText) == 0 {
			got.FreeText = nil
			tt.expected.FreeText = nil
		}
		if len(got.Filters) == 0 && len(tt.expected.Filters) == 0 {
			got.Filters = nil
			tt.expected.Filters = nil
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Parse(%q)\ngot  %#v\nwant %#v", tt.input, got, tt.expected)
		}
	}
}

func TestFilterMatchInt(t *testing.T) {
	tests := []struct {
		query string
		n     int
		want  bool
	}{
		{"inning:7", 7, true},
		{"inning:7", 8, false},
		{"inning:>7", 7, false},
		{"inning:>=7", 7, true},
		{"inning:<3", 2, true},
		{"inning:<=3", 4, false},
		{"inning:7..9", 9, true},
		{"inning:7..9", 10, false},
		{"inning:7..x", 8, false},
		{"-inning:1", 2, true},
		{"inning:abc", 0, false},
	}
	for _, tt := range tests {
		f := Parse(tt.query).Filters[0]
		if got := f.MatchInt(tt.n); got != tt.want {
			t.Errorf("%q.MatchInt(%d) = %v, want %v", tt.query, tt.n, got, tt.want)
		}
	}
}

func TestFilterMatchString(t *testing.T) {
	f := Parse("type:STEAL").Filters[0]
	if !f.MatchString("steal") {
		t.Error("Expected case-insensitive match")
	}
	neg := Parse("-type:steal").Filters[0]
	if neg.MatchString("steal") || !neg.MatchString("bunt") {
		t.Error("Expected negated filter to invert the match")
	}
	cmp := Parse("type:>steal").Filters[0]
	if cmp.MatchString("steal") {
		t.Error("Expected comparison operators not to match text")
	}
	if !Parse("").Empty() {
		t.Error("Expected empty query")
	}
}
