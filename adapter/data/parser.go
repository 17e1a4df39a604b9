package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Errors reported by [Parse], wrapped in [ErrSyntax].
var (
	// ErrTrailingData means something other than blanks or comments follows
	// the top level value.
	ErrTrailingData = errors.New("trailing data after JSON")
	// ErrInvalidUTF8Char means a \u escape is malformed.
	ErrInvalidUTF8Char = errors.New("invalid utf8 char")
	// ErrExpectedString means an object key is not a quoted string.
	ErrExpectedString = errors.New("expected string")
	// ErrUnterminatedString means the input ends inside a string.
	ErrUnterminatedString = errors.New("unterminated string")
	// ErrNoComma means two values of an object or array are not separated.
	ErrNoComma = errors.New("expected comma")
	// ErrNoColon means an object key is not followed by its value.
	ErrNoColon = errors.New("expected colon")
	// ErrInvalidNumber means a token looked like a number but strconv could
	// not read it.
	ErrInvalidNumber = errors.New("invalid JSON number")
	// ErrUnterminatedRegex is returned when a regular expression literal
	// is not closed by a slash.
	ErrUnterminatedRegex = errors.New("unterminated regular expression")
)

// ErrSyntax wraps any parsing error with the byte offset where it happened.
type ErrSyntax struct {
	Offset int
	Err    error
}

// Error implements [error].
func (e ErrSyntax) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Err)
}

// Unwrap returns the underlying parsing error.
func (e ErrSyntax) Unwrap() error {
	return e.Err
}

// ErrRegexFlag is returned when a regular expression literal uses a flag that
// has no equivalent in Go regular expressions.
type ErrRegexFlag struct {
	Flag byte
}

// Error implements [error].
func (e ErrRegexFlag) Error() string {
	return fmt.Sprintf("unsupported regular expression flag %q", e.Flag)
}

// Parse reads a JSON value with comments. Besides plain JSON it accepts line
// (//) and block comments, trailing commas in objects and arrays and regular
// expression literals such as /^abc/i. Objects are returned as ordered [*D]
// values, numbers as float64 and {"$$date": <unix millis>} as [time.Time].
func Parse(data []byte) (any, error) {
	p := &parser{data: data, n: len(data)}
	v, err := p.parse()
	if err != nil {
		return nil, ErrSyntax{Offset: p.i, Err: err}
	}
	return v, nil
}

// ErrInvalidLiteral is returned for a misspelled true, false or null.
type ErrInvalidLiteral struct {
	Value string
}

func (e ErrInvalidLiteral) Error() string {
	return fmt.Sprintf("invalid literal %q", e.Value)
}

// ErrUnknownEscapeChar is returned when a backslash inside a string is
// followed by a byte other than one of "\/'bfnrtu.
type ErrUnknownEscapeChar struct {
	Char byte
}

func (e ErrUnknownEscapeChar) Error() string {
	return fmt.Sprintf("unknown escape char, %q", e.Char)
}

// ErrInvalidControlChar is returned for raw control bytes inside a string.
type ErrInvalidControlChar struct {
	Char byte
}

func (e ErrInvalidControlChar) Error() string {
	return fmt.Sprintf("invalid control char, %q", e.Char)
}

type parser struct {
	data []byte
	i    int
	n    int
}

func (p *parser) parse() (any, error) {
	p.skip()
	val, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.i != p.n {
		return nil, ErrTrailingData
	}
	return val, nil
}

func (p *parser) skip() {
	for p.i < p.n {
		switch p.data[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		case '/':
			if !p.comment() {
				return
			}
		default:
			return
		}
	}
}

// comment skips a comment starting at the current position, returning false
// if there is none.
func (p *parser) comment() bool {
	if p.i+1 >= p.n {
		return false
	}
	switch p.data[p.i+1] {
	case '/':
		end := bytes.IndexByte(p.data[p.i:], '\n')
		if end < 0 {
			p.i = p.n
			return true
		}
		p.i += end + 1
		return true
	case '*':
		end := bytes.Index(p.data[p.i+2:], []byte("*/"))
		if end < 0 {
			p.i = p.n
			return true
		}
		p.i += end + 4
		return true
	default:
		return false
	}
}

func (p *parser) value() (any, error) {
	if p.i >= p.n {
		return nil, io.ErrUnexpectedEOF
	}
	switch p.data[p.i] {
	case '{':
		return p.obj()
	case '[':
		return p.arr()
	case '"':
		return p.str()
	case 't':
		return p.expect("true", true)
	case 'f':
		return p.expect("false", false)
	case 'n':
		return p.expect("null", nil)
	case '/':
		return p.regex()
	default:
		return p.num()
	}
}

func (p *parser) obj() (any, error) {
	p.i++ // skip '{'
	p.skip()
	m := NewD()
	for {
		p.skip()
		// also handles trailing commas
		if p.i < p.n && p.data[p.i] == '}' {
			p.i++
			break
		}
		if p.i >= p.n {
			return nil, io.ErrUnexpectedEOF
		}
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		p.skip()
		if p.i >= p.n || p.data[p.i] != ':' {
			return nil, ErrNoColon
		}
		p.i++
		p.skip()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
		p.skip()
		if p.i >= p.n {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.i] == '}' {
			p.i++
			break
		}
		if p.data[p.i] != ',' {
			return nil, ErrNoComma
		}
		p.i++
	}
	if m.Len() == 1 {
		if d, ok := m.Get("$$date").(float64); ok {
			return time.UnixMilli(int64(d)), nil
		}
	}
	return m, nil
}


func (p *parser) arr() ([]any, error) {
	p.i++ // skip '['
	p.skip()
	out := []any{}
	for {
		// also handles trailing commas
		if p.i < p.n && p.data[p.i] == ']' {
			p.i++
			break
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		p.skip()
		if p.i >= p.n {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.i] == ']' {
			p.i++
			break
		}
		if p.data[p.i] != ',' {
			return nil, ErrNoComma
		}
		p.i++
		p.skip()
	}
	return out, nil
}

func (p *parser) str() (string, error) {
	if p.data[p.i] != '"' {
		return "", ErrExpectedString
	}
	for i := p.i + 1; i < p.n; i++ {
		c := p.data[i]
		switch c {
		case '\\':
			i++
		case '"':
			unquoted := p.data[p.i+1 : i]
			s, err := p.decodeString(unquoted)
			if err != nil {
				return "", err
			}
			p.i = i + 1
			return s, nil
		default:
		}
	}
	return "", ErrUnterminatedString
}

func (p *parser) decodeString(b []byte) (string, error) {

	out := make([]byte, len(b)+2*utf8.UTFMax)

	i := 0 // current byte
	w := 0 // written

	for i < len(b) {
		if w >= len(out)-2*utf8.UTFMax {
			nb := make([]byte, (len(out)+utf8.UTFMax)*2)
			copy(nb, out[0:w])
			out = nb
		}
		switch c := b[i]; {
		case c == '\\':
			i++
			switch b[i] {
			case '"', '\\', '/', '\'':
				out[w] = b[i]
				i++
				w++
			case 'b':
				out[w] = '\b'
				i++
				w++
			case 'f':
				out[w] = '\f'
				i++
				w++
			case 'n':
				out[w] = '\n'
				i++
				w++
			case 'r':
				out[w] = '\r'
				i++
				w++
			case 't':
				out[w] = '\t'
				i++
				w++
			case 'u':
				i--
				si, sw, br, err := p.treatSlashU(b[i:], out[w:])
				if err != nil {
					return "", err
				}
				i += si
				w += sw
				if br {
					break
				}
			default:
				return "", ErrUnknownEscapeChar{Char: b[i]}
			}

		case c < ' ':
			return "", ErrInvalidControlChar{Char: c}

		case c < utf8.RuneSelf:
			out[w] = c
			i++
			w++

		default:
			rr, size := utf8.DecodeRune(b[i:])
			i += size
			w += utf8.EncodeRune(out[w:], rr)
		}
	}
	return string(out[0:w]), nil
}

func (p *parser) treatSlashU(b []byte, out []byte) (int, int, bool, error) {
	rr := p.getUTF(b)
	if rr < 0 {
		return 0, 0, false, ErrInvalidUTF8Char
	}
	i := 6
	w := 0
	if utf16.IsSurrogate(rr) {
		rr1 := p.getUTF(b[i:])
		if dec := utf16.DecodeRune(rr, rr1); dec != unicode.ReplacementChar {
			i += 6
			w += utf8.EncodeRune(out, dec)
			return i, w, true, nil
		}
		rr = unicode.ReplacementChar
	}
	w += utf8.EncodeRune(out, rr)
	return i, w, false, nil
}

func (p *parser) getUTF(b []byte) rune {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return -1
	}

	r, err := strconv.ParseInt(string(b[2:6]), 16, 64)
	if err != nil {
		return -1
	}
	return rune(r)

}

func (p *parser) num() (any, error) {
	start := p.i
	for p.i < p.n {
		c := p.data[p.i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			p.i++
		} else {
			break
		}
	}
	s := string(p.data[start:p.i])
	var v any
	var err error
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNumber, err)
	}
	return v, nil
}

func (p *parser) regex() (*regexp.Regexp, error) {
	start := p.i + 1
	inClass := false
	end := -1
Loop:
	for i := start; i < p.n; i++ {
		switch p.data[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			break Loop
		case '/':
			if !inClass {
				end = i
				break Loop
			}
		}
	}
	if end < 0 {
		return nil, ErrUnterminatedRegex
	}
	pattern := string(p.data[start:end])
	p.i = end + 1

	var flags strings.Builder
	for ; p.i < p.n; p.i++ {
		c := p.data[p.i]
		if c < 'a' || c > 'z' {
			break
		}
		switch c {
		case 'i', 'm', 's':
			if !strings.ContainsRune(flags.String(), rune(c)) {
				flags.WriteByte(c)
			}
		case 'g', 'u', 'y':
			// no effect on a single match test
		default:
			return nil, ErrRegexFlag{Flag: c}
		}
	}
	if flags.Len() > 0 {
		pattern = "(?" + flags.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}

func (p *parser) expect(lit string, val any) (any, error) {
	end := p.i + len(lit)
	if end > p.n || string(p.data[p.i:end]) != lit {
		limit := min(p.n, end)
		literal := p.data[p.i:limit]
		return nil, ErrInvalidLiteral{Value: string(literal)}
	}
	p.i = end
	return val, nil
}
