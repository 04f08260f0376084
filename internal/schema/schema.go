// Package schema reads declarative descriptions of Kotlin files, written in
// YAML or TOML, and builds them into kotlinpoet file specs.
package schema

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// File describes one Kotlin source file.
type File struct {
	Package     string      `yaml:"package" toml:"package"`
	Name        string      `yaml:"name" toml:"name"`
	Comment     string      `yaml:"comment" toml:"comment"`
	Options     *Options    `yaml:"options" toml:"options"`
	Imports     []Import    `yaml:"imports" toml:"imports"`
	TypeAliases []TypeAlias `yaml:"type_aliases" toml:"type_aliases"`
	Types       []Type      `yaml:"types" toml:"types"`
	Functions   []Function  `yaml:"functions" toml:"functions"`
	Properties  []Property  `yaml:"properties" toml:"properties"`

	// Path is the file the description was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// Options override the render options for the file.
type Options struct {
	Indent         string   `yaml:"indent" toml:"indent"`
	ColumnLimit    int      `yaml:"column_limit" toml:"column_limit"`
	ExplicitAPI    *bool    `yaml:"explicit_api" toml:"explicit_api"`
	DefaultImports []string `yaml:"default_imports" toml:"default_imports"`
}

// Import is an explicit import. Name is a qualified name.
type Import struct {
	Name  string `yaml:"name" toml:"name"`
	Alias string `yaml:"alias" toml:"alias"`
}

// TypeAlias is a typealias declaration.
type TypeAlias struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
	Kdoc string `yaml:"kdoc" toml:"kdoc"`
}

// Type kinds.
const (
	KindClass     = "class"
	KindData      = "data"
	KindValue     = "value"
	KindEnum      = "enum"
	KindInterface = "interface"
	KindObject    = "object"
)

// Type describes a class, interface, object or enum.
type Type struct {
	Kind           string     `yaml:"kind" toml:"kind"`
	Name           string     `yaml:"name" toml:"name"`
	Kdoc           string     `yaml:"kdoc" toml:"kdoc"`
	Modifiers      []string   `yaml:"modifiers" toml:"modifiers"`
	TypeVariables  []string   `yaml:"type_variables" toml:"type_variables"`
	Superclass     string     `yaml:"superclass" toml:"superclass"`
	SuperclassArgs []string   `yaml:"superclass_args" toml:"superclass_args"`
	Interfaces     []string   `yaml:"interfaces" toml:"interfaces"`
	Constants      []Constant `yaml:"constants" toml:"constants"`
	Properties     []Property `yaml:"properties" toml:"properties"`
	Functions      []Function `yaml:"functions" toml:"functions"`
	Types          []Type     `yaml:"types" toml:"types"`
}

// Constant is an enum constant. Args are passed to the enum constructor.
type Constant struct {
	Name string   `yaml:"name" toml:"name"`
	Args []string `yaml:"args" toml:"args"`
}

// Property describes a property. For classes, data classes and enums,
// properties are declared in the primary constructor and Default becomes
// the parameter's default value. Elsewhere Default is the initializer.
type Property struct {
	Name      string   `yaml:"name" toml:"name"`
	Type      string   `yaml:"type" toml:"type"`
	Mutable   bool     `yaml:"mutable" toml:"mutable"`
	Nullable  bool     `yaml:"nullable" toml:"nullable"`
	Default   string   `yaml:"default" toml:"default"`
	Kdoc      string   `yaml:"kdoc" toml:"kdoc"`
	Modifiers []string `yaml:"modifiers" toml:"modifiers"`
}

// Function describes a function whose body, if any, is a single
// expression that it returns.
type Function struct {
	Name          string   `yaml:"name" toml:"name"`
	Kdoc          string   `yaml:"kdoc" toml:"kdoc"`
	Modifiers     []string `yaml:"modifiers" toml:"modifiers"`
	TypeVariables []string `yaml:"type_variables" toml:"type_variables"`
	Receiver      string   `yaml:"receiver" toml:"receiver"`
	Params        []Param  `yaml:"params" toml:"params"`
	Returns       string   `yaml:"returns" toml:"returns"`
	Body          string   `yaml:"body" toml:"body"`
}

// Param is a function parameter.
type Param struct {
	Name    string `yaml:"name" toml:"name"`
	Type    string `yaml:"type" toml:"type"`
	Default string `yaml:"default" toml:"default"`
}

// Load reads a file description. The format is chosen by extension:
// .yaml and .yml for YAML, .toml for TOML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = ParseYAML(data)
	case ".toml":
		f, err = ParseTOML(data)
	default:
		return nil, errors.WithHint(
			errors.Newf("%s: unsupported schema format %q", path, ext),
			"use a .yaml, .yml or .toml file")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	f.Path = path
	return f, nil
}

// ParseYAML decodes a YAML file description. Unknown keys are errors.
func ParseYAML(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return &f, f.validate()
}

// ParseTOML decodes a TOML file description. Unknown keys are errors.
func ParseTOML(data []byte) (*File, error) {
	var f File
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("unknown keys: %v", undecoded)
	}
	return &f, f.validate()
}

func (f *File) validate() error {
	if f.Name == "" {
		if len(f.Types) != 1 {
			return errors.New("name is required unless the file declares exactly one type")
		}
		f.Name = f.Types[0].Name
	}
	if len(f.Types)+len(f.Functions)+len(f.Properties)+len(f.TypeAliases) == 0 {
		return errors.Newf("file %s declares nothing", f.Name)
	}
	for i := range f.Types {
		if err := f.Types[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Type) validate() error {
	if t.Name == "" {
		return errors.New("type without a name")
	}
	switch t.Kind {
	case "":
		t.Kind = KindClass
	case KindClass, KindData, KindValue, KindEnum, KindInterface, KindObject:
	default:
		return errors.Newf("type %s: unknown kind %q", t.Name, t.Kind)
	}
	if t.Kind == KindData && len(t.Properties) == 0 {
		return errors.Newf("data class %s must have at least one property", t.Name)
	}
	if t.Kind == KindValue && len(t.Properties) != 1 {
		return errors.Newf("value class %s must have exactly one property", t.Name)
	}
	if len(t.Constants) > 0 && t.Kind != KindEnum {
		return errors.Newf("type %s has constants but is not an enum", t.Name)
	}
	for i := range t.Types {
		if err := t.Types[i].validate(); err != nil {
			return errors.Wrapf(err, "in %s", t.Name)
		}
	}
	return nil
}
