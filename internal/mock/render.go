package mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// displayText renders a JSON value for an echo reply. A top-level string is
// bare; null, true and false become None, True and False; nested strings are
// single-quoted and members are joined with ", ". Object members keep their
// wire order.
func displayText(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var b strings.Builder
	if err := renderValue(dec, &b, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderValue(dec *json.Decoder, b *strings.Builder, top bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case nil:
		b.WriteString("None")
	case bool:
		if v {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case json.Number:
		b.WriteString(renderNumber(v))
	case string:
		if top {
			b.WriteString(v)
		} else {
			b.WriteString(quoteString(v))
		}
	case json.Delim:
		return renderContainer(dec, b, v)
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func renderContainer(dec *json.Decoder, b *strings.Builder, open json.Delim) error {
	closing := "]"
	if open == '{' {
		closing = "}"
	}
	b.WriteByte(byte(open))

	for i := 0; dec.More(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if open == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := key.(string)
			if !ok {
				return fmt.Errorf("object key %v is not a string", key)
			}
			b.WriteString(quoteString(name))
			b.WriteString(": ")
		}
		if err := renderValue(dec, b, false); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	b.WriteString(closing)
	return nil
}

// renderNumber keeps integers as written. Anything with a fraction or an
// exponent is a float: fixed notation with at least one decimal for
// exponents in [-4, 16), shortest scientific notation otherwise.
func renderNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := n.Float64()
	if err != nil {
		if math.IsInf(f, 0) {
			if f < 0 {
				return "-inf"
			}
			return "inf"
		}
		return s
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}

// quoteString single-quotes s, switching to double quotes when s contains a
// single quote but no double quote.
func quoteString(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
