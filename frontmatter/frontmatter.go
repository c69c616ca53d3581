// Package frontmatter splits a delimited key-value metadata block from the
// head of a content document.
//
// The grammar is deliberately flat: one `key: value` pair per line, no
// nesting, no lists, no multi-line values. Structured documents (the CV data
// file) go through a real YAML parser instead.
package frontmatter

import "strings"

// Delimiter marks the start and end of a metadata block. It must appear
// alone on its own line.
const Delimiter = "---"

// Parse separates the metadata block from the body of raw.
//
// If raw does not begin with a delimiter line followed by a closing delimiter
// line, Parse returns an empty map and raw unchanged. Malformed lines inside
// the block are skipped, never rejected: content authoring is manual and
// trusted, so the parser fails open.
func Parse(raw string) (map[string]string, string) {
	meta := map[string]string{}

	rest, ok := cutDelimiterLine(raw)
	if !ok {
		return meta, raw
	}

	block, body, ok := splitAtClosing(rest)
	if !ok {
		return meta, raw
	}

	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = unquote(strings.TrimSpace(value))
	}
	return meta, body
}

// cutDelimiterLine strips a leading delimiter line from s.
func cutDelimiterLine(s string) (string, bool) {
	line, rest, found := strings.Cut(s, "\n")
	if !found {
		return "", false
	}
	if strings.TrimRight(line, " \t\r") != Delimiter {
		return "", false
	}
	return rest, true
}

// splitAtClosing finds the closing delimiter line in s and returns the
// metadata region before it and the body after it.
func splitAtClosing(s string) (block, body string, ok bool) {
	remaining := s
	offset := 0
	for {
		line, rest, found := strings.Cut(remaining, "\n")
		if !found {
			// The closing delimiter must itself be terminated by a newline;
			// a bare trailing "---" does not close the block.
			return "", "", false
		}
		if strings.TrimRight(line, " \t\r") == Delimiter {
			return s[:offset], rest, true
		}
		offset += len(line) + 1
		remaining = rest
	}
}

// unquote strips one pair of matching single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
