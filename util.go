package aieps

import (
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// dec formats numbers for the page description with a fixed number of decimals, removing superfluous zeros.
type dec int

func (prec dec) f(f float64) string {
	s := fmt.Sprintf("%.*f", int(prec), f)
	s = string(minify.Decimal([]byte(s), 0))
	if s == "" || s == "-0" || s == "-" {
		return "0"
	}
	return s
}

// fs formats a list of numbers separated by spaces.
func (prec dec) fs(fs ...float64) string {
	sb := strings.Builder{}
	for i, f := range fs {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(prec.f(f))
	}
	return sb.String()
}

// wrap inserts line breaks before words that would reach the given column and keeps existing line breaks. Every word is preceded by a space.
func wrap(s string, width int) string {
	sb := strings.Builder{}
	n := 0 // characters after the last line break
	for _, word := range strings.Split(s, " ") {
		first := word
		if i := strings.IndexByte(word, '\n'); i != -1 {
			first = word[:i]
		}
		if 0 < width && width <= n+len(first) {
			sb.WriteString(" \n")
			n = 0
		} else {
			sb.WriteByte(' ')
			n++
		}
		sb.WriteString(word)
		if i := strings.LastIndexByte(word, '\n'); i != -1 {
			n = len(word) - i - 1
		} else {
			n += len(word)
		}
	}
	return sb.String()
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

// parseNumbers parses a list of numbers separated by commas and/or whitespace.
func parseNumbers(v string) ([]float64, error) {
	b := []byte(v)
	nums := []float64{}
	i := skipCommaWhitespace(b)
	for i < len(b) {
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("bad number: %s", v[i:])
		}
		nums = append(nums, f)
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	return nums, nil
}

var nonASCII = runes.Map(func(r rune) rune {
	if r < 32 || 127 < r {
		return '_'
	}
	return r
})

// sanitize replaces non-printable and non-ASCII characters by underscores.
func sanitize(s string) string {
	s, _, _ = transform.String(nonASCII, s)
	return s
}

// psString returns s as a PostScript string literal with non-printable and non-ASCII characters replaced by underscores.
func psString(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(sanitize(s))
	return "(" + s + ")"
}
