package helpers

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when a model reply carries no JSON value.
var ErrNoJSON = errors.New("no JSON object or array in reply")

// ExtractJSON returns the first JSON object or array in a model reply.
// A ```json fence wins over a bare ``` fence; inside (or without) a fence the
// first balanced {...} or [...] is returned, skipping braces inside strings.
func ExtractJSON(reply string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(reply), "\uFEFF")
	if inner, ok := fenced(s, "```json"); ok {
		s = inner
	} else if inner, ok := fenced(s, "```"); ok {
		s = inner
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		if end, ok := balancedEnd(s, i); ok {
			return s[i : end+1], nil
		}
	}
	return "", ErrNoJSON
}

// fenced returns the text between the first open fence and the next ```.
func fenced(s, open string) (string, bool) {
	start := strings.Index(s, open)
	if start == -1 {
		return "", false
	}
	rest := s[start+len(open):]
	if open == "```" {
		// drop an info string such as "JSON" or "javascript"
		if nl := strings.IndexByte(rest, '\n'); nl != -1 && !strings.ContainsAny(rest[:nl], "{[") {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// balancedEnd returns the index of the bracket closing the one at start.
func balancedEnd(s string, start int) (int, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return 0, false
			}
			top := stack[len(stack)-1]
			if (top == '{' && c != '}') || (top == '[' && c != ']') {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
