// Package grammar holds the lexeme tables the Pin1Yin1 parser consults: which
// whole words are reserved keywords and which are operators, with their
// priority and associativity.
//
// Tables are an explicit Config value handed to the parser, never global
// state, so several grammars (or concurrent test runs) can coexist. A Config
// is immutable once built and safe for concurrent use.
//
// Example usage:
//
//	cfg := grammar.Default()
//	tag, ok := cfg.Keyword("han2")  // TagBlock, true
//	op, ok := cfg.Operator("jia1")  // {jia1 add 4 binary}, true
//
//	// User supplied tables, format picked from the extension
//	cfg, err := grammar.Load("tables.yaml")
package grammar

import (
	_ "embed"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed default.toml
var defaultTables []byte

// Format is the encoding of a table file.
type Format int

const (
	// FormatAuto picks the format from the file extension, defaulting to TOML.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Config is a validated pair of keyword and operator tables.
type Config struct {
	keywords  map[string]Tag
	operators map[string]Operator

	tagLexemes map[Tag]string
	opLexemes  map[Op]string
}

// Keyword is one row of the keyword table.
type Keyword struct {
	Lexeme string
	Tag    Tag
}

// tableFile is the on-disk shape shared by the TOML and YAML encodings.
type tableFile struct {
	Keywords  map[string]string `toml:"keywords" yaml:"keywords"`
	Operators []operatorRow     `toml:"operators" yaml:"operators"`
}

type operatorRow struct {
	Symbol        string `toml:"symbol" yaml:"symbol"`
	Op            string `toml:"op" yaml:"op"`
	Priority      int    `toml:"priority" yaml:"priority"`
	Associativity string `toml:"associativity" yaml:"associativity"`
}

var defaultConfig = sync.OnceValue(func() *Config {
	cfg, err := Parse(defaultTables, FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("grammar: embedded default tables are invalid: %v", err))
	}
	return cfg
})

// Default returns the built-in Pin1Yin1 tables.
func Default() *Config {
	return defaultConfig()
}

// Load reads and validates a table file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar tables %s: %w", path, err)
	}

	cfg, err := Parse(data, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("grammar tables %s: %w", path, err)
	}
	return cfg, nil
}

// detectFormat determines the table format from the file extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes and validates tables from data.
func Parse(data []byte, format Format) (*Config, error) {
	var file tableFile

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	}

	var errs []error

	keywords := make(map[string]Tag, len(file.Keywords))
	for lexeme, name := range file.Keywords {
		tag, err := ParseTag(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("keyword %q: %w", lexeme, err))
			continue
		}
		keywords[lexeme] = tag
	}

	operators := make([]Operator, 0, len(file.Operators))
	for _, row := range file.Operators {
		op, err := ParseOp(row.Op)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator %q: %w", row.Symbol, err))
			continue
		}
		assoc, err := ParseAssociativity(row.Associativity)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator %q: %w", row.Symbol, err))
			continue
		}
		operators = append(operators, Operator{
			Symbol:        row.Symbol,
			Op:            op,
			Priority:      row.Priority,
			Associativity: assoc,
		})
	}

	if len(errs) > 0 {
		return nil, stdErrors.Join(errs...)
	}

	return New(keywords, operators)
}

// New builds a Config from in-memory tables and validates it.
func New(keywords map[string]Tag, operators []Operator) (*Config, error) {
	cfg := &Config{
		keywords:   make(map[string]Tag, len(keywords)),
		operators:  make(map[string]Operator, len(operators)),
		tagLexemes: make(map[Tag]string),
		opLexemes:  make(map[Op]string),
	}

	var errs []error

	for lexeme, tag := range keywords {
		cfg.keywords[lexeme] = tag
		// Several lexemes may spell one tag; the smallest is canonical.
		if cur, ok := cfg.tagLexemes[tag]; !ok || lexeme < cur {
			cfg.tagLexemes[tag] = lexeme
		}
	}

	for _, op := range operators {
		if _, dup := cfg.operators[op.Symbol]; dup {
			errs = append(errs, fmt.Errorf("operator %q declared twice", op.Symbol))
			continue
		}
		cfg.operators[op.Symbol] = op
		if cur, ok := cfg.opLexemes[op.Op]; !ok || op.Symbol < cur {
			cfg.opLexemes[op.Op] = op.Symbol
		}
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, stdErrors.Join(errs...)
	}

	return cfg, nil
}

// Validate reports every problem with the tables.
func (c *Config) Validate() error {
	var errs []error

	for lexeme, tag := range c.keywords {
		if !isWord(lexeme) {
			errs = append(errs, fmt.Errorf("keyword %q is not a single word", lexeme))
		}
		if tag == TagNone || tag >= tagCount {
			errs = append(errs, fmt.Errorf("keyword %q has no tag", lexeme))
		}
		if _, clash := c.operators[lexeme]; clash {
			errs = append(errs, fmt.Errorf("%q is both a keyword and an operator", lexeme))
		}
	}

	for symbol, op := range c.operators {
		if !isWord(symbol) {
			errs = append(errs, fmt.Errorf("operator %q is not a single word", symbol))
		}
		if op.Op == OpNone || op.Op >= opCount {
			errs = append(errs, fmt.Errorf("operator %q has no operation", symbol))
		}
		if op.Priority <= 0 {
			errs = append(errs, fmt.Errorf("operator %q must have a positive priority, got %d", symbol, op.Priority))
		}
	}

	for _, tag := range requiredTags {
		if _, ok := c.tagLexemes[tag]; !ok {
			errs = append(errs, fmt.Errorf("no keyword spells required tag %s", tag))
		}
	}

	// Errors come out in a stable order.
	slices.SortFunc(errs, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})

	return stdErrors.Join(errs...)
}

// isWord reports whether s is non-empty and free of whitespace.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// Keyword looks up a whole word in the keyword table.
func (c *Config) Keyword(word string) (Tag, bool) {
	tag, ok := c.keywords[word]
	return tag, ok
}

// Operator looks up a whole word in the operator table.
func (c *Config) Operator(word string) (Operator, bool) {
	op, ok := c.operators[word]
	return op, ok
}

// IsReserved reports whether word is spelled by either table.
func (c *Config) IsReserved(word string) bool {
	if _, ok := c.keywords[word]; ok {
		return true
	}
	_, ok := c.operators[word]
	return ok
}

// Lexeme returns the canonical spelling of a tag, or "" if no keyword spells it.
func (c *Config) Lexeme(tag Tag) string {
	return c.tagLexemes[tag]
}

// OperatorLexeme returns the canonical spelling of an operator.
func (c *Config) OperatorLexeme(op Op) string {
	return c.opLexemes[op]
}

// Keywords lists the keyword table ordered by tag, then lexeme.
func (c *Config) Keywords() []Keyword {
	rows := make([]Keyword, 0, len(c.keywords))
	for lexeme, tag := range c.keywords {
		rows = append(rows, Keyword{Lexeme: lexeme, Tag: tag})
	}
	slices.SortFunc(rows, func(a, b Keyword) int {
		if a.Tag != b.Tag {
			return int(a.Tag) - int(b.Tag)
		}
		return strings.Compare(a.Lexeme, b.Lexeme)
	})
	return rows
}

// Operators lists the operator table ordered by priority, then symbol.
func (c *Config) Operators() []Operator {
	rows := make([]Operator, 0, len(c.operators))
	for _, op := range c.operators {
		rows = append(rows, op)
	}
	slices.SortFunc(rows, func(a, b Operator) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})
	return rows
}
