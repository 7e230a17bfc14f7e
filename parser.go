package graffle2svg

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
)

// bundleData is the document file inside a .graffle bundle directory.
const bundleData = "data.plist"

// ParseDocument decodes the top level <dict> of a property list. Gzip
// compressed input, as saved by OmniGraffle, is decompressed first.
func ParseDocument(r io.Reader) (*Dict, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("ParseDocument Error: %v", err)
		}
		defer zr.Close()
		return decodeDocument(zr)
	}
	return decodeDocument(br)
}

// ParseString decodes a property list held in a string.
func ParseString(str string) (*Dict, error) {
	return ParseDocument(strings.NewReader(str))
}

// ParseFile decodes the property list at path. A directory is taken to be
// a .graffle bundle and its data.plist is read.
func ParseFile(path string) (*Dict, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		path = filepath.Join(path, bundleData)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

func decodeDocument(r io.Reader) (*Dict, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, ErrNoDict
		}
		if err != nil {
			return nil, fmt.Errorf("ParseDocument Error: %v", err)
		}

		tok, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch tok.Name.Local {
		case "plist":
			// descend into the wrapper
		case "dict":
			d, err := DecodeDict(decoder, tok)
			if err != nil {
				return nil, fmt.Errorf("ParseDocument Error: %w", err)
			}
			return d, nil
		default:
			return nil, fmt.Errorf("ParseDocument Error: <%s>: %w", tok.Name.Local, ErrNoDict)
		}
	}
}
