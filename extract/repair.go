package extract

import "strings"

// normalizePythonLiterals rewrites Python list/dict syntax into JSON:
// single-quoted strings become double-quoted, True/False/None become
// true/false/null and trailing commas before ] or } are dropped.
func normalizePythonLiterals(s string) string {
	src := []rune(s)
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '"':
			end, _ := scanString(src, i, '"')
			out.WriteString(string(src[i:end]))
			i = end - 1

		case ch == '\'':
			end, closed := scanString(src, i, '\'')
			bodyEnd := end
			if closed {
				bodyEnd--
			}
			out.WriteString(requote(src[i+1 : bodyEnd]))
			i = end - 1

		case ch == ',':
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == ']' || src[j] == '}') {
				continue
			}
			out.WriteRune(ch)

		case isLetter(ch) && (i == 0 || !isIdent(src[i-1])):
			j := i
			for j < len(src) && isIdent(src[j]) {
				j++
			}
			word := string(src[i:j])
			switch word {
			case "True":
				word = "true"
			case "False":
				word = "false"
			case "None":
				word = "null"
			}
			out.WriteString(word)
			i = j - 1

		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}

// scanString returns the index just past the closing quote of the string
// starting at src[start], or len(src) if it never closes.
func scanString(src []rune, start int, quote rune) (int, bool) {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return len(src), false
}

// requote turns the body of a single-quoted string into a JSON string.
func requote(body []rune) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '\\' && i+1 < len(body) && body[i+1] == '\'':
			b.WriteRune('\'')
			i++
		case ch == '\\' && i+1 < len(body):
			b.WriteRune(ch)
			b.WriteRune(body[i+1])
			i++
		case ch == '"':
			b.WriteString(`\"`)
		case ch == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// repairJSON fixes object keys a model left unquoted or half-quoted:
// `{name: "x"}` and `{name": "x"}` both become `{"name": "x"}`.
// Text inside string values is never touched.
func repairJSON(s string) string {
	src := []rune(s)
	fixed := make([]rune, 0, len(src)+16)

	for i := 0; i < len(src); {
		ch := src[i]

		if ch == '"' {
			end, _ := scanString(src, i, '"')
			fixed = append(fixed, src[i:end]...)
			i = end
			continue
		}

		fixed = append(fixed, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(src) && isSpace(src[i]) {
			fixed = append(fixed, src[i])
			i++
		}
		if i >= len(src) || !isLetter(src[i]) {
			continue
		}

		keyStart := i
		for i < len(src) && isIdent(src[i]) {
			i++
		}
		key := src[keyStart:i]

		j := i
		for j < len(src) && isSpace(src[j]) {
			j++
		}

		switch {
		case j+1 < len(src) && src[j] == '"' && src[j+1] == ':':
			// missing opening quote
			fixed = append(fixed, '"')
			fixed = append(fixed, key...)
			fixed = append(fixed, '"', ':')
			i = j + 2
		case j < len(src) && src[j] == ':':
			// bare key
			fixed = append(fixed, '"')
			fixed = append(fixed, key...)
			fixed = append(fixed, '"', ':')
			i = j + 1
		default:
			fixed = append(fixed, key...)
		}
	}

	return string(fixed)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdent(r rune) bool {
	return isLetter(r) || r == '_' || (r >= '0' && r <= '9')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
