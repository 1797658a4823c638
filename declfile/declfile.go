// Package declfile loads argument declarations from YAML or TOML files and
// applies them to an argsnap.Parser.
//
// A declaration file describes the parser and its arguments:
//
//	name: deploy
//	description: Deploy a service
//	version: deploy 1.0
//	arguments:
//	  - names: [-v, --verbose]
//	    help: increase verbosity
//	  - names: [--env]
//	    nargs: 1
//	    choices: [dev, prod]
//	    required: true
//	  - names: [targets]
//	    action: infinite
package declfile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-argsnap/argsnap"
)

// Format is the encoding of a declaration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is a decoded declaration file.
type File struct {
	Name        string     `yaml:"name,omitempty" toml:"name,omitempty"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty"`
	Epilog      string     `yaml:"epilog,omitempty" toml:"epilog,omitempty"`
	Version     string     `yaml:"version,omitempty" toml:"version,omitempty"`
	DisableHelp bool       `yaml:"disable_help,omitempty" toml:"disable_help,omitempty"`
	Alternative bool       `yaml:"alternative,omitempty" toml:"alternative,omitempty"`
	Strict      bool       `yaml:"strict,omitempty" toml:"strict,omitempty"`
	Arguments   []Argument `yaml:"arguments,omitempty" toml:"arguments,omitempty"`
}

// Argument declares one positional argument or option.
type Argument struct {
	Names    []string `yaml:"names" toml:"names"`
	Help     string   `yaml:"help,omitempty" toml:"help,omitempty"`
	Required bool     `yaml:"required,omitempty" toml:"required,omitempty"`
	Metavar  string   `yaml:"metavar,omitempty" toml:"metavar,omitempty"`
	Nargs    int      `yaml:"nargs,omitempty" toml:"nargs,omitempty"`
	Action   string   `yaml:"action,omitempty" toml:"action,omitempty"`
	Defaults []string `yaml:"defaults,omitempty" toml:"defaults,omitempty"`

	// validators
	Choices []string `yaml:"choices,omitempty" toml:"choices,omitempty"`
	Min     *float64 `yaml:"min,omitempty" toml:"min,omitempty"`
	Max     *float64 `yaml:"max,omitempty" toml:"max,omitempty"`
	Pattern string   `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Semver  string   `yaml:"semver,omitempty" toml:"semver,omitempty"`
	Path    string   `yaml:"path,omitempty" toml:"path,omitempty"` // "any", "file" or "dir"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("declfile: unknown format for %q", path)
	}
}

// Load reads and decodes the declaration file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode reads a declaration file from r. Unknown keys are errors.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("declfile: unsupported format %q", format)
	}
	return &f, nil
}

// Encode writes f to w.
func (f *File) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	default:
		return fmt.Errorf("declfile: unsupported format %q", format)
	}
}

// Parser creates a parser named after the file and applies the file to it.
func (f *File) Parser() (*argsnap.Parser, error) {
	p := argsnap.New(f.Name, f.Description)
	if err := f.Apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply configures p and declares every argument of f, in order. It stops at
// the first argument the parser rejects.
func (f *File) Apply(p *argsnap.Parser) error {
	if err := p.Err(); err != nil {
		return err
	}
	if f.Description != "" {
		p.Description(f.Description)
	}
	if f.Epilog != "" {
		p.Epilog(f.Epilog)
	}
	if f.DisableHelp {
		p.DisableHelp()
	}
	if f.Version != "" {
		p.Version(f.Version)
	}
	p.Alternative(f.Alternative).Strict(f.Strict)

	for i := range f.Arguments {
		a := &f.Arguments[i]
		if err := a.apply(p); err != nil {
			return fmt.Errorf("argument %d (%s): %w", i, strings.Join(a.Names, ", "), err)
		}
	}
	return nil
}

func (a *Argument) apply(p *argsnap.Parser) error {
	h := p.AddArgument(a.Names...)
	if a.Action != "" {
		action, ok := argsnap.ParseAction(a.Action)
		if !ok {
			return fmt.Errorf("unknown action %q", a.Action)
		}
		h.Action(action)
	}
	if a.Nargs != 0 {
		h.Nargs(a.Nargs)
	}
	if len(a.Defaults) > 0 {
		h.Defaults(a.Defaults...)
	}
	h.Help(a.Help).Required(a.Required)
	if a.Metavar != "" {
		h.Metavar(a.Metavar)
	}

	validators, err := a.validators()
	if err != nil {
		return err
	}
	switch len(validators) {
	case 0:
	case 1:
		h.Valid(validators[0])
	default:
		h.Valid(argsnap.ValidAll(validators...))
	}
	return p.Err()
}

func (a *Argument) validators() ([]argsnap.Validator, error) {
	var vs []argsnap.Validator
	if len(a.Choices) > 0 {
		vs = append(vs, argsnap.ValidChoice(a.Choices...))
	}
	if a.Min != nil || a.Max != nil {
		lo, hi := math.Inf(-1), math.Inf(1)
		if a.Min != nil {
			lo = *a.Min
		}
		if a.Max != nil {
			hi = *a.Max
		}
		vs = append(vs, argsnap.ValidMinMax(lo, hi))
	}
	if a.Pattern != "" {
		vs = append(vs, argsnap.ValidRegex(a.Pattern))
	}
	if a.Semver != "" {
		vs = append(vs, argsnap.ValidSemver(a.Semver))
	}
	switch a.Path {
	case "":
	case "any":
		vs = append(vs, argsnap.ValidPath())
	case "file":
		vs = append(vs, argsnap.ValidFile())
	case "dir":
		vs = append(vs, argsnap.ValidDir())
	default:
		return nil, fmt.Errorf("unknown path kind %q", a.Path)
	}
	return vs, nil
}

// FromParser describes the declarations of p, skipping the automatic help
// and version options. Validators cannot be recovered and are left out.
func FromParser(p *argsnap.Parser) *File {
	f := &File{}
	for _, v := range p.Declarations() {
		if v.Action() == argsnap.ActionHelp || v.Action() == argsnap.ActionVersion {
			continue
		}
		a := Argument{
			Names:    v.Names(),
			Help:     v.Help(),
			Required: v.IsRequired(),
			Metavar:  v.Metavar(),
			Defaults: v.Defaults(),
		}
		if v.Action() != argsnap.ActionNone {
			a.Action = v.Action().String()
		}
		if v.Nargs() > 1 || v.Class() == argsnap.ClassSimple {
			a.Nargs = v.Nargs()
		}
		f.Arguments = append(f.Arguments, a)
	}
	return f
}
