package graffle2svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned while decoding a property list. They are wrapped with
// the offending key or element name; use errors.Is to test for them.
var (
	ErrOddDict        = errors.New("dict children do not alternate key and value")
	ErrUnknownElement = errors.New("unknown property list element")
	ErrDuplicateKey   = errors.New("duplicate dict key")
	ErrNoDict         = errors.New("no top level dict")
)

// Value is a decoded property list value: one of String, Integer, Real,
// Bool, Date, Data, Array or *Dict.
type Value interface {
	plistValue()
}

// String is the text of a <string> element.
type String string

// Integer is the literal decimal text of an <integer> element. It is not
// converted so that callers pick their own precision.
type Integer string

// Real is the literal decimal text of a <real> element.
type Real string

// Bool is a <true/> or <false/> element.
type Bool bool

// Date is the text of a <date> element.
type Date string

// Data is the base64 text of a <data> element, whitespace removed.
type Data string

// Array is an ordered <array>.
type Array []Value

func (String) plistValue()  {}
func (Integer) plistValue() {}
func (Real) plistValue()    {}
func (Bool) plistValue()    {}
func (Date) plistValue()    {}
func (Data) plistValue()    {}
func (Array) plistValue()   {}
func (*Dict) plistValue()   {}

// Float64 parses the decimal text.
func (i Integer) Float64() (float64, error) {
	return strconv.ParseFloat(string(i), 64)
}

// Float64 parses the decimal text.
func (r Real) Float64() (float64, error) {
	return strconv.ParseFloat(string(r), 64)
}

// Dict is a <dict> decoded into an ordered mapping.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set stores v under key. A new key is appended to the key order, an
// existing one keeps its position.
func (d *Dict) Set(key string, v Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in document order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Text returns the textual form of a scalar stored under key.
func (d *Dict) Text(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	return TextOf(v)
}

// Float returns the numeric value of a scalar stored under key.
func (d *Dict) Float(key string) (float64, bool) {
	s, ok := d.Text(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Dict returns the dictionary stored under key.
func (d *Dict) Dict(key string) (*Dict, bool) {
	v, ok := d.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Dict)
	return sub, ok
}

// Array returns the array stored under key.
func (d *Dict) Array(key string) (Array, bool) {
	v, ok := d.Get(key)
	if !ok {
		return nil, false
	}
	a, ok := v.(Array)
	return a, ok
}

// Clone returns a shallow copy: nested values are shared.
func (d *Dict) Clone() *Dict {
	c := NewDict()
	if d == nil {
		return c
	}
	for _, k := range d.keys {
		c.Set(k, d.values[k])
	}
	return c
}

// TextOf returns the text of a scalar value. Containers have no text.
func TextOf(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Integer:
		return string(t), true
	case Real:
		return string(t), true
	case Date:
		return string(t), true
	case Data:
		return string(t), true
	case Bool:
		if t {
			return "YES", true
		}
		return "NO", true
	}
	return "", false
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (d *Dict) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	d.keys = nil
	d.values = make(map[string]Value)

	var (
		key    string
		hasKey bool
	)
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if !hasKey {
				if tok.Name.Local != "key" {
					return fmt.Errorf("<%s> where a key was expected: %w", tok.Name.Local, ErrOddDict)
				}
				if err = decoder.DecodeElement(&key, &tok); err != nil {
					return fmt.Errorf("error decoding dict key: %s", err)
				}
				if _, dup := d.values[key]; dup {
					return fmt.Errorf("key %q: %w", key, ErrDuplicateKey)
				}
				hasKey = true
				continue
			}
			if tok.Name.Local == "key" {
				return fmt.Errorf("key %q has no value: %w", key, ErrOddDict)
			}
			v, err := decodeValue(decoder, tok)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			d.keys = append(d.keys, key)
			d.values[key] = v
			hasKey = false

		case xml.EndElement:
			if hasKey {
				return fmt.Errorf("key %q has no value: %w", key, ErrOddDict)
			}
			return nil
		}
	}
}

// DecodeDict decodes the <dict> element opened by start.
func DecodeDict(decoder *xml.Decoder, start xml.StartElement) (*Dict, error) {
	if start.Name.Local != "dict" {
		return nil, fmt.Errorf("<%s>: %w", start.Name.Local, ErrNoDict)
	}
	d := NewDict()
	if err := decoder.DecodeElement(d, &start); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeValue(decoder *xml.Decoder, start xml.StartElement) (Value, error) {
	switch start.Name.Local {
	case "dict":
		return DecodeDict(decoder, start)
	case "array":
		return decodeArray(decoder)
	case "true", "false":
		if err := decoder.Skip(); err != nil {
			return nil, err
		}
		return Bool(start.Name.Local == "true"), nil
	case "string", "integer", "real", "date", "data":
	default:
		return nil, fmt.Errorf("<%s>: %w", start.Name.Local, ErrUnknownElement)
	}

	var text string
	if err := decoder.DecodeElement(&text, &start); err != nil {
		return nil, fmt.Errorf("error decoding <%s>: %s", start.Name.Local, err)
	}
	switch start.Name.Local {
	case "integer":
		return Integer(strings.TrimSpace(text)), nil
	case "real":
		return Real(strings.TrimSpace(text)), nil
	case "date":
		return Date(strings.TrimSpace(text)), nil
	case "data":
		return Data(strings.Join(strings.Fields(text), "")), nil
	}
	return String(text), nil
}

func decodeArray(decoder *xml.Decoder) (Array, error) {
	a := Array{}
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			v, err := decodeValue(decoder, tok)
			if err != nil {
				return nil, fmt.Errorf("array item %d: %w", len(a), err)
			}
			a = append(a, v)
		case xml.EndElement:
			return a, nil
		}
	}
}
