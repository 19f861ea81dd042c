// Package lookup loads the caller-side lookup tables used by the product sales parser:
// platform code to product name, and standard province to aliases.
//
// The file is read with viper, so YAML, JSON and TOML are all accepted:
//
//	codes:
//	  - platform: shopee
//	    code: SP-001
//	    name: Jasmine Rice 5kg
//	provinces:
//	  - name: กรุงเทพมหานคร
//	    aliases: [bangkok, bkk, กทม]
//
// Codes and names are kept as list entries rather than map keys because viper folds map keys
// to lower case, which would corrupt case-sensitive product codes.
package lookup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

var (
	// ErrDuplicateCode is returned when a platform code is listed twice with different names
	ErrDuplicateCode = errors.New("lookup: duplicate product code")
	// ErrUnknownProvince is returned when an alias entry names a non-standard province
	ErrUnknownProvince = errors.New("lookup: unknown standard province")
	// ErrInvalidFile is returned when the lookup file fails validation
	ErrInvalidFile = errors.New("lookup: invalid lookup file")
)

// CodeEntry maps one platform product code to a display name
type CodeEntry struct {
	Platform string `mapstructure:"platform" validate:"required"`
	Code     string `mapstructure:"code" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
}

// ProvinceEntry lists the aliases of one standard province
type ProvinceEntry struct {
	Name    string   `mapstructure:"name" validate:"required"`
	Aliases []string `mapstructure:"aliases" validate:"dive,required"`
}

// File is the on-disk shape of a lookup file
type File struct {
	Codes     []CodeEntry     `mapstructure:"codes" validate:"dive"`
	Provinces []ProvinceEntry `mapstructure:"provinces" validate:"dive"`
}

// Tables are the lookup snapshots handed to a parse call
type Tables struct {
	CodeNames       map[marketplace.Platform]map[string]string
	ProvinceAliases marketplace.ProvinceAliasMap
}

// Empty returns tables with no codes and no aliases
func Empty() *Tables {
	return &Tables{
		CodeNames:       make(map[marketplace.Platform]map[string]string),
		ProvinceAliases: make(marketplace.ProvinceAliasMap),
	}
}

// CodeNamesFor returns the code to name table of a platform. The result is never nil.
func (t *Tables) CodeNamesFor(p marketplace.Platform) map[string]string {
	if t == nil || t.CodeNames[p] == nil {
		return map[string]string{}
	}
	return t.CodeNames[p]
}

var validate = validator.New()

// LoadFile reads a lookup file; the format is taken from the file extension
func LoadFile(path string) (*Tables, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("lookup: read %s: %w", path, err)
	}
	return decode(v)
}

// Load reads lookup tables from r in the given format (yaml, json or toml)
func Load(r io.Reader, format string) (*Tables, error) {
	v := viper.New()
	v.SetConfigType(strings.ToLower(format))
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("lookup: read %s: %w", format, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Tables, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("lookup: decode: %w", err)
	}
	return f.Tables()
}

// Tables validates the file and builds the lookup snapshots
func (f *File) Tables() (*Tables, error) {
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	t := Empty()
	for _, c := range f.Codes {
		p, err := marketplace.ParsePlatform(c.Platform)
		if err != nil {
			return nil, fmt.Errorf("lookup: code %q: %w", c.Code, err)
		}
		code := strings.TrimSpace(c.Code)
		name := strings.TrimSpace(c.Name)

		names := t.CodeNames[p]
		if names == nil {
			names = make(map[string]string)
			t.CodeNames[p] = names
		}
		if existing, ok := names[code]; ok && existing != name {
			return nil, fmt.Errorf("%w: %s %q is %q and %q", ErrDuplicateCode, p, code, existing, name)
		}
		names[code] = name
	}

	for _, pe := range f.Provinces {
		name := strings.TrimSpace(pe.Name)
		if !marketplace.IsStandardProvince(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvince, name)
		}
		t.ProvinceAliases[name] = append(t.ProvinceAliases[name], pe.Aliases...)
	}

	return t, nil
}
