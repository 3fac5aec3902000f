package puzzle

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	errNoJSONObject = errors.New("no JSON object found in reply")
	errNotAnObject  = errors.New("reply is not a JSON object")
)

// ParseError reports a model reply that could not be read as a puzzle.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse AI response as JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsePuzzleReply decodes raw as a Record, falling back to the first
// balanced {...} span when the reply has text around the JSON. Field types
// are not enforced: scalars are kept in their text form and a lone hint
// string becomes a one-item list.
func ParsePuzzleReply(raw string) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := unmarshalReply(raw, &fields); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Raw: raw, Err: errNotAnObject}
	}

	return &Record{
		Story:    textField(fields["story"]),
		Question: textField(fields["question"]),
		Answer:   textField(fields["answer"]),
		Hints:    hintsField(fields["hints"]),
		ImageURL: textField(fields["image_url"]),
	}, nil
}

func decodeLoose(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func textField(raw json.RawMessage) string {
	return textOf(decodeLoose(raw))
}

func textOf(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(out)
	}
}

func hintsField(raw json.RawMessage) []string {
	switch val := decodeLoose(raw).(type) {
	case nil:
		return nil
	case []interface{}:
		hints := make([]string, 0, len(val))
		for _, item := range val {
			hints = append(hints, textOf(item))
		}
		return hints
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{val}
	default:
		return []string{textOf(val)}
	}
}

func unmarshalReply(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	span, ok := firstObjectSpan(cleaned)
	if !ok {
		return errNoJSONObject
	}
	return json.Unmarshal([]byte(span), out)
}

// firstObjectSpan returns the first balanced {...} in s. Braces inside JSON
// strings are ignored, and so are escaped quotes.
func firstObjectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
