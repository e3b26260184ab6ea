package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type Trigger struct {
	Key   string
	Reply string
}

// TriggerMap keeps triggers in the order they appear in the settings file.
type TriggerMap []Trigger

func (t TriggerMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for i, trigger := range t {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(trigger.Key)
		if err != nil {
			return nil, err
		}
		reply, err := json.Marshal(trigger.Reply)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(reply)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *TriggerMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: trigger_map: %w", ErrMalformedSettings, err)
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: trigger_map must be an object", ErrMalformedSettings)
	}

	var triggers TriggerMap
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("%w: trigger_map: %w", ErrMalformedSettings, err)
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: trigger_map key %v", ErrMalformedSettings, tok)
		}

		var reply string
		if err := dec.Decode(&reply); err != nil {
			return fmt.Errorf("%w: trigger_map value for %q: %w", ErrMalformedSettings, key, err)
		}

		triggers = append(triggers, Trigger{Key: key, Reply: reply})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: trigger_map: %w", ErrMalformedSettings, err)
	}

	*t = triggers
	return nil
}

// Letters, digits and underscore count as word characters on both sides of a
// trigger.
const wordChars = `\p{L}\p{N}_`

type rule struct {
	trigger Trigger
	pattern *regexp.Regexp
}

// Matcher finds the first trigger contained as a whole word in a message body.
type Matcher struct {
	rules []rule
}

func NewMatcher(triggers TriggerMap) *Matcher {
	m := &Matcher{rules: make([]rule, 0, len(triggers))}

	for _, trigger := range triggers {
		key := strings.ToLower(trigger.Key)
		if key == "" {
			continue
		}

		m.rules = append(m.rules, rule{
			trigger: Trigger{Key: key, Reply: trigger.Reply},
			pattern: regexp.MustCompile(
				`(?:^|[^` + wordChars + `])` + regexp.QuoteMeta(key) + `(?:$|[^` + wordChars + `])`),
		})
	}

	return m
}

// Match expects an already lowercased body. Only the first matching trigger in
// file order is returned.
func (m *Matcher) Match(body string) (Trigger, bool) {
	if body == "" {
		return Trigger{}, false
	}

	for _, r := range m.rules {
		if r.pattern.MatchString(body) {
			return r.trigger, true
		}
	}

	return Trigger{}, false
}

func Match(body string, triggers TriggerMap) (Trigger, bool) {
	return NewMatcher(triggers).Match(body)
}
