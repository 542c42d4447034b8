// Package document reads named S-basis polynomials from YAML.
//
// A document looks like
//
//	polynomials:
//	  - name: ease
//	    fragments:
//	      - [0, 1]
//	      - [0.2, 0.2]
//
// where each fragment is the endpoint pair (a_k, b_k) multiplying s(t)^k.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/tphakala/go-sbasis"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid document")

type (
	Polynomial struct {
		Name      string       `yaml:"name"`
		Fragments [][2]float64 `yaml:"fragments"`
	}

	Document struct {
		Polynomials []Polynomial `yaml:"polynomials"`
	}
)

// SBasis returns the polynomial's coefficients.
func (p Polynomial) SBasis() sbasis.SBasis {
	out := make(sbasis.SBasis, len(p.Fragments))
	for i, f := range p.Fragments {
		out[i] = sbasis.NewLinear(f[0], f[1])
	}
	return out
}

// FromSBasis builds a named entry from a polynomial.
func FromSBasis(name string, a sbasis.SBasis) Polynomial {
	p := Polynomial{Name: name, Fragments: make([][2]float64, len(a))}
	for i, l := range a {
		p.Fragments[i] = [2]float64{l.A, l.B}
	}
	return p
}

// Decode reads and validates a document.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalid)
		}
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc *Document) (err error) {
	enc := yaml.NewEncoder(w)
	defer func() { err = multierr.Append(err, enc.Close()) }()
	return enc.Encode(doc)
}

// Validate reports every problem in the document at once.
func (d *Document) Validate() error {
	var err error
	if len(d.Polynomials) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no polynomials", ErrInvalid))
	}

	seen := make(map[string]int, len(d.Polynomials))
	for i, p := range d.Polynomials {
		if p.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%w: polynomial %d has no name", ErrInvalid, i))
		} else if j, dup := seen[p.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: polynomial %d reuses name %q of polynomial %d", ErrInvalid, i, p.Name, j))
		} else {
			seen[p.Name] = i
		}
		if !p.SBasis().IsFinite() {
			err = multierr.Append(err, fmt.Errorf("%w: polynomial %q has non-finite coefficients", ErrInvalid, p.Name))
		}
	}
	return err
}

// Find returns the polynomial with the given name.
func (d *Document) Find(name string) (Polynomial, bool) {
	for _, p := range d.Polynomials {
		if p.Name == name {
			return p, true
		}
	}
	return Polynomial{}, false
}
