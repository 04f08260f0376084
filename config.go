package kotlinpoet

import (
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// DefaultIndent is the indent used when RenderOptions.Indent is empty.
const DefaultIndent = "  "

// DefaultColumnLimit is the column at which soft wraps are taken.
const DefaultColumnLimit = 100

// RenderOptions control how a FileSpec is rendered.
type RenderOptions struct {
	// Indent is the string emitted once per indentation level.
	Indent string
	// ColumnLimit is the maximum line width before a soft wrap (♢) is
	// turned into a newline. Zero means DefaultColumnLimit.
	ColumnLimit int
	// ExplicitAPI emits `public` on declarations even where the context
	// already implies it, as required by Kotlin's explicit API mode.
	ExplicitAPI bool
	// DefaultImports lists packages whose members need no import statement
	// (for example "kotlin" or "kotlin.collections"). Imports from these
	// packages are dropped from the import block.
	DefaultImports []string
}

// DefaultRenderOptions returns the options used when a FileSpec has none.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Indent: DefaultIndent, ColumnLimit: DefaultColumnLimit}
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	if o.ColumnLimit <= 0 {
		o.ColumnLimit = DefaultColumnLimit
	}
	return o
}

type renderOptionsFile struct {
	Indent         string   `toml:"indent"`
	ColumnLimit    int64    `toml:"column_limit"`
	ExplicitAPI    bool     `toml:"explicit_api"`
	DefaultImports []string `toml:"default_imports"`
}

// LoadRenderOptions reads render options from a TOML file. Keys that are
// absent keep their default values:
//
//	indent = "    "
//	column_limit = 120
//	explicit_api = true
//	default_imports = ["kotlin", "kotlin.collections"]
func LoadRenderOptions(path string) (RenderOptions, error) {
	var f renderOptionsFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return RenderOptions{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	return optionsFromFile(path, meta, f)
}

// ParseRenderOptions is like LoadRenderOptions but reads from a string.
func ParseRenderOptions(data string) (RenderOptions, error) {
	var f renderOptionsFile
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return RenderOptions{}, errors.Wrap(err, "failed to parse TOML")
	}
	return optionsFromFile("<input>", meta, f)
}

func optionsFromFile(path string, meta toml.MetaData, f renderOptionsFile) (RenderOptions, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return RenderOptions{}, errors.Newf("%s: unknown keys: %v", path, undecoded)
	}
	opts := DefaultRenderOptions()
	if meta.IsDefined("indent") {
		if f.Indent == "" || strings.TrimLeft(f.Indent, " \t") != "" {
			return RenderOptions{}, errors.Newf("%s: indent must be a non-empty run of spaces or tabs", path)
		}
		opts.Indent = f.Indent
	}
	if meta.IsDefined("column_limit") {
		limit, err := safecast.Conv[int](f.ColumnLimit)
		if err != nil || limit <= 0 {
			return RenderOptions{}, errors.Newf("%s: invalid column_limit %d", path, f.ColumnLimit)
		}
		opts.ColumnLimit = limit
	}
	opts.ExplicitAPI = f.ExplicitAPI
	for _, p := range f.DefaultImports {
		if strings.TrimSpace(p) == "" {
			return RenderOptions{}, errors.Newf("%s: empty entry in default_imports", path)
		}
	}
	opts.DefaultImports = f.DefaultImports
	return opts, nil
}
