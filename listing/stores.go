package listing

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stores.yaml
var defaultStoresYAML []byte

var (
	ErrNoStores       = errors.New("no store profiles configured")
	ErrUnknownStore   = errors.New("unknown store")
	ErrDuplicateStore = errors.New("duplicate store profile")
)

// StoreProfile holds the text a store adds to every listing.
type StoreProfile struct {
	Name        string `yaml:"name"`
	TitlePrefix string `yaml:"title_prefix"`
	DescPrefix  string `yaml:"desc_prefix"`
	DescSuffix  string `yaml:"desc_suffix"`
}

// Stores is an ordered, read-only set of store profiles. The first profile is
// the fallback for names that are not configured.
type Stores struct {
	profiles []StoreProfile
	byName   map[string]int
}

type storesFile struct {
	Stores []StoreProfile `yaml:"stores"`
}

// NewStores validates and indexes profiles.
func NewStores(profiles []StoreProfile) (*Stores, error) {
	if len(profiles) == 0 {
		return nil, ErrNoStores
	}

	s := &Stores{
		profiles: make([]StoreProfile, 0, len(profiles)),
		byName:   make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, errors.New("store profile must have a non-empty name")
		}
		if _, exists := s.byName[p.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStore, p.Name)
		}
		s.byName[p.Name] = len(s.profiles)
		s.profiles = append(s.profiles, p)
	}
	return s, nil
}

// LoadStores decodes a YAML document with a "stores" list.
func LoadStores(r io.Reader) (*Stores, error) {
	var f storesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoStores
		}
		return nil, fmt.Errorf("failed to decode store profiles: %w", err)
	}
	return NewStores(f.Stores)
}

// DefaultStores returns the built-in store profiles.
func DefaultStores() *Stores {
	s, err := LoadStores(bytes.NewReader(defaultStoresYAML))
	if err != nil {
		panic(fmt.Sprintf("listing: embedded store profiles are invalid: %v", err))
	}
	return s
}

// Get returns the named profile.
func (s *Stores) Get(name string) (StoreProfile, error) {
	i, ok := s.byName[strings.TrimSpace(name)]
	if !ok {
		return StoreProfile{}, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
	return s.profiles[i], nil
}

// Lookup returns the named profile, or the fallback profile when the name is
// empty or unknown.
func (s *Stores) Lookup(name string) StoreProfile {
	if p, err := s.Get(name); err == nil {
		return p
	}
	return s.profiles[0]
}

// Names lists store names in configuration order.
func (s *Stores) Names() []string {
	names := make([]string, len(s.profiles))
	for i, p := range s.profiles {
		names[i] = p.Name
	}
	return names
}

// Templates returns every non-empty description prefix and suffix across all
// stores, so text from a previous store can be stripped.
func (s *Stores) Templates() (prefixes, suffixes []string) {
	for _, p := range s.profiles {
		if p.DescPrefix != "" {
			prefixes = append(prefixes, p.DescPrefix)
		}
		if p.DescSuffix != "" {
			suffixes = append(suffixes, p.DescSuffix)
		}
	}
	return prefixes, suffixes
}
