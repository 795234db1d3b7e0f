package questionbank

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/learnbot/internal/curriculum"
)

// fileCatalog is the YAML shape:
//
//	data_structures:
//	  easy:
//	    - question: What is an array?
//	      options: [...]
//	      answer: 0
type fileCatalog map[string]map[string][]Item

// DecodeCatalog reads a YAML catalog without validating items.
func DecodeCatalog(r io.Reader) (Catalog, error) {
	var raw fileCatalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := Catalog{}
	for mk, tiers := range raw {
		m, err := curriculum.ParseModule(mk)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		c[m] = map[curriculum.Difficulty][]Item{}
		for dk, items := range tiers {
			d, err := curriculum.ParseDifficulty(dk)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: %w", m, err)
			}
			c[m][d] = items
		}
	}
	return c, nil
}

// LoadFile reads and validates a YAML catalog.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, err
	}
	return New(c)
}

// EncodeCatalog writes c as YAML.
func EncodeCatalog(w io.Writer, c Catalog) error {
	raw := fileCatalog{}
	for m, tiers := range c {
		raw[string(m)] = map[string][]Item{}
		for d, items := range tiers {
			raw[string(m)][string(d)] = items
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
