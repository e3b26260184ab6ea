package domain

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	triggers := TriggerMap{
		{Key: "cat", Reply: "GATTO"},
		{Key: "qual è", Reply: "QUAL È"},
		{Key: "c++", Reply: "CPP"},
		{Key: "dog", Reply: "CANE"},
	}

	tests := []struct {
		name    string
		body    string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "whole word in the middle",
			body:    "i saw a cat today",
			wantKey: "cat",
			wantOK:  true,
		},
		{
			name:    "whole body",
			body:    "cat",
			wantKey: "cat",
			wantOK:  true,
		},
		{
			name:    "punctuation counts as boundary",
			body:    "look, a cat!",
			wantKey: "cat",
			wantOK:  true,
		},
		{
			name:   "substring of longer word",
			body:   "this category is empty",
			wantOK: false,
		},
		{
			name:   "suffix of longer word",
			body:   "bobcat",
			wantOK: false,
		},
		{
			name:   "accented letter is a word character",
			body:   "catà",
			wantOK: false,
		},
		{
			name:   "digits are word characters",
			body:   "cat9",
			wantOK: false,
		},
		{
			name:   "underscore is a word character",
			body:   "my_cat",
			wantOK: false,
		},
		{
			name:    "multi word trigger with accent",
			body:    "ma qual è il problema",
			wantKey: "qual è",
			wantOK:  true,
		},
		{
			name:    "regex metacharacters are literal",
			body:    "i write c++ code",
			wantKey: "c++",
			wantOK:  true,
		},
		{
			name:   "metacharacters do not act as a pattern",
			body:   "i write cc code",
			wantOK: false,
		},
		{
			name:    "first trigger in file order wins",
			body:    "dog and cat",
			wantKey: "cat",
			wantOK:  true,
		},
		{
			name:    "line breaks are boundaries",
			body:    "hello\ndog\nbye",
			wantKey: "dog",
			wantOK:  true,
		},
		{
			name:   "empty body",
			body:   "",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Match(tc.body, triggers)

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantKey, got.Key)
			if ok {
				idx := slices.IndexFunc(triggers, func(tr Trigger) bool { return tr.Key == tc.wantKey })
				require.NotEqual(t, -1, idx)
				assert.Equal(t, triggers[idx].Reply, got.Reply)
			}
		})
	}
}

func TestMatcherLowercasesKeys(t *testing.T) {
	m := NewMatcher(TriggerMap{{Key: "Cat", Reply: "GATTO"}})

	got, ok := m.Match("a cat")
	require.True(t, ok)
	assert.Equal(t, Trigger{Key: "cat", Reply: "GATTO"}, got)
}

func TestMatcherSkipsEmptyKeys(t *testing.T) {
	m := NewMatcher(TriggerMap{{Key: "", Reply: "nothing"}})

	_, ok := m.Match("anything at all")
	assert.False(t, ok)
}

func TestTriggerMapJSONKeepsOrder(t *testing.T) {
	raw := `{"zeta":"Z","alpha":"A","mid":"M"}`

	var triggers TriggerMap
	require.NoError(t, json.Unmarshal([]byte(raw), &triggers))

	assert.Equal(t, TriggerMap{
		{Key: "zeta", Reply: "Z"},
		{Key: "alpha", Reply: "A"},
		{Key: "mid", Reply: "M"},
	}, triggers)

	out, err := json.Marshal(triggers)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t, raw, string(out))
}

func TestTriggerMapUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "array", raw: `["cat"]`},
		{name: "non string value", raw: `{"cat": 1}`},
		{name: "truncated", raw: `{"cat": "GATTO"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var triggers TriggerMap
			err := triggers.UnmarshalJSON([]byte(tc.raw))
			require.ErrorIs(t, err, ErrMalformedSettings)
		})
	}
}

func TestTriggerMapNull(t *testing.T) {
	triggers := TriggerMap{{Key: "cat"}}
	require.NoError(t, json.Unmarshal([]byte(`null`), &triggers))
	assert.Nil(t, triggers)

	out, err := json.Marshal(TriggerMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
