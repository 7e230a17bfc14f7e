package graffle2svg

import (
	"strconv"
	"strings"
	"unicode"
)

// destinations whose content is never text.
var rtfDestinations = map[string]bool{
	"fonttbl":          true,
	"colortbl":         true,
	"expandedcolortbl": true,
	"stylesheet":       true,
	"info":             true,
	"pict":             true,
}

// PlainText returns the text of a Graffle text block. OmniGraffle stores
// text as RTF; anything not starting with "{\rtf" is returned unchanged.
// Paragraphs are separated by "\n".
func PlainText(s string) string {
	if !strings.HasPrefix(s, `{\rtf`) {
		return s
	}

	var (
		b     strings.Builder
		depth int
		// skip is the depth at which an ignored destination started, 0 if none.
		skip      int
		skipChars int
	)
	emit := func(r rune) {
		if skip != 0 {
			return
		}
		if skipChars > 0 {
			skipChars--
			return
		}
		b.WriteRune(r)
	}

	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch c {
		case '{':
			depth++
			if skip == 0 && i+2 < len(rs) && rs[i+1] == '\\' && rs[i+2] == '*' {
				skip = depth
			}
		case '}':
			if skip == depth {
				skip = 0
			}
			depth--
		case '\r', '\n':
		case '\\':
			if i+1 >= len(rs) {
				break
			}
			next := rs[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				emit(next)
				i++
			case next == '\n' || next == '\r':
				emit('\n')
				i++
			case next == '~':
				emit(' ')
				i++
			case next == '\'':
				if i+3 < len(rs) {
					if v, err := strconv.ParseUint(string(rs[i+2:i+4]), 16, 8); err == nil {
						emit(rune(v))
					}
				}
				i += 3
			case unicode.IsLetter(next):
				j := i + 1
				for j < len(rs) && unicode.IsLetter(rs[j]) && rs[j] < unicode.MaxASCII {
					j++
				}
				word := string(rs[i+1 : j])
				k := j
				if k < len(rs) && rs[k] == '-' {
					k++
				}
				for k < len(rs) && rs[k] >= '0' && rs[k] <= '9' {
					k++
				}
				param := string(rs[j:k])
				if k < len(rs) && rs[k] == ' ' {
					k++
				}
				i = k - 1

				if rtfDestinations[word] && skip == 0 {
					skip = depth
					continue
				}
				switch word {
				case "par", "line":
					emit('\n')
				case "tab":
					emit('\t')
				case "u":
					if n, err := strconv.Atoi(param); err == nil {
						if n < 0 {
							n += 65536
						}
						emit(rune(n))
						skipChars = 1
					}
				}
			default:
				i++
			}
		default:
			emit(c)
		}
	}
	return strings.TrimRight(b.String(), " \n\t")
}
