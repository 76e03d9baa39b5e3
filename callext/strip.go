package callext

// StripComments blanks every SQL comment in text: each /* ... */ block
// (non-nesting, closed by the first */) and each -- comment up to end of
// line. Comment bytes are overwritten with spaces and newlines inside block
// comments are kept, so every surviving byte keeps its original offset,
// line, and column. Bytes inside string literals and inside ${...}
// placeholders are never touched. Stripping comment-free text is a no-op.
func StripComments(text string) string {
	buf := []byte(text)
	i := 0
	for i < len(buf) {
		switch ch := buf[i]; {
		case ch == '\'' || ch == '"':
			i = skipString(buf, i)
		case ch == '$' && i+1 < len(buf) && buf[i+1] == '{':
			i = skipPlaceholder(buf, i)
		case ch == '-' && i+1 < len(buf) && buf[i+1] == '-':
			for i < len(buf) && buf[i] != '\n' {
				buf[i] = ' '
				i++
			}
		case ch == '/' && i+1 < len(buf) && buf[i+1] == '*':
			buf[i], buf[i+1] = ' ', ' '
			i += 2
			for i < len(buf) {
				if buf[i] == '*' && i+1 < len(buf) && buf[i+1] == '/' {
					buf[i], buf[i+1] = ' ', ' '
					i += 2
					break
				}
				if buf[i] != '\n' {
					buf[i] = ' '
				}
				i++
			}
		default:
			i++
		}
	}
	return string(buf)
}

// skipString advances past a quoted literal starting at buf[start].
// Backslash escapes the next byte. An unterminated literal runs to the end
// of the buffer; the tokenizer reports that case, not the stripper.
func skipString(buf []byte, start int) int {
	quote := buf[start]
	i := start + 1
	for i < len(buf) {
		switch buf[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return i
}

// skipPlaceholder advances past a ${...} substitution placeholder starting
// at buf[start]. An unclosed placeholder runs to the end of the buffer.
func skipPlaceholder(buf []byte, start int) int {
	i := start + 2
	for i < len(buf) && buf[i] != '}' {
		i++
	}
	if i < len(buf) {
		i++
	}
	return i
}
