package bridge

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/rshade/esgsync/internal/enums"
)

// Directory validation errors.
var (
	ErrEmptyName          = errors.New("investor name is required")
	ErrDuplicateInvestor  = errors.New("duplicate investor")
	ErrInvalidTicket      = errors.New("ticket minimum exceeds maximum")
	ErrInvalidReadiness   = errors.New("min_readiness must be between 0 and 1")
	ErrDirectoryNotFound  = errors.New("investor directory not found")
	ErrUnknownSectorValue = errors.New("unknown sector")
)

// RegionGlobal in an investor's regions matches every company.
const RegionGlobal = "global"

//go:embed investors.yaml
var defaultDirectory []byte

// Investor is one entry in the directory.
type Investor struct {
	Name         string   `yaml:"name" json:"name"`
	Type         string   `yaml:"type,omitempty" json:"type,omitempty"`
	Sectors      []string `yaml:"sectors,omitempty" json:"sectors,omitempty"`
	Regions      []string `yaml:"regions,omitempty" json:"regions,omitempty"`
	TicketMin    *float64 `yaml:"ticket_min,omitempty" json:"ticket_min,omitempty"`
	TicketMax    *float64 `yaml:"ticket_max,omitempty" json:"ticket_max,omitempty"`
	Currency     string   `yaml:"currency,omitempty" json:"currency,omitempty"`
	ESGFocus     []string `yaml:"esg_focus,omitempty" json:"esg_focus,omitempty"`
	MinReadiness float64  `yaml:"min_readiness,omitempty" json:"min_readiness,omitempty"`
	Website      string   `yaml:"website,omitempty" json:"website,omitempty"`
}

// Directory is the set of investors matched against.
type Directory struct {
	Investors []Investor `yaml:"investors"`
}

// ParseDirectory decodes and validates a YAML directory. Sector and focus
// labels are normalized to their enum tags.
func ParseDirectory(r io.Reader) (*Directory, error) {
	var d Directory
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing investor directory: %w", err)
	}
	if err := d.normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDirectory reads a directory file.
func LoadDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
		}
		return nil, fmt.Errorf("opening investor directory: %w", err)
	}
	defer f.Close()
	return ParseDirectory(f)
}

// LoadDirectoryOrDefault reads path, falling back to the built-in directory
// when the file does not exist.
func LoadDirectoryOrDefault(path string) (*Directory, error) {
	if path != "" {
		d, err := LoadDirectory(path)
		if !errors.Is(err, ErrDirectoryNotFound) {
			return d, err
		}
	}
	return DefaultDirectory()
}

// DefaultDirectory returns the built-in sample directory.
func DefaultDirectory() (*Directory, error) {
	return ParseDirectory(strings.NewReader(string(defaultDirectory)))
}

func (d *Directory) normalize() error {
	seen := make(map[string]bool, len(d.Investors))
	for idx := range d.Investors {
		inv := &d.Investors[idx]
		inv.Name = strings.TrimSpace(inv.Name)
		if inv.Name == "" {
			return fmt.Errorf("investor %d: %w", idx+1, ErrEmptyName)
		}
		key := fold(inv.Name)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateInvestor, inv.Name)
		}
		seen[key] = true

		if inv.TicketMin != nil && inv.TicketMax != nil && *inv.TicketMin > *inv.TicketMax {
			return fmt.Errorf("%s: %w", inv.Name, ErrInvalidTicket)
		}
		if inv.MinReadiness < 0 || inv.MinReadiness > 1 {
			return fmt.Errorf("%s: %w", inv.Name, ErrInvalidReadiness)
		}

		sectors := make([]string, 0, len(inv.Sectors))
		for _, s := range inv.Sectors {
			tag, ok := enums.Sector.Normalize(s)
			if !ok {
				return fmt.Errorf("%s: %w %q", inv.Name, ErrUnknownSectorValue, s)
			}
			sectors = append(sectors, tag)
		}
		inv.Sectors = sectors
		inv.ESGFocus = enums.ESGFocus.NormalizeAll(inv.ESGFocus)
	}
	return nil
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
