// Package gen turns a YAML description of sum types into Go source built on
// package adt.
//
// For each type it emits the payload structs, the schema struct, the
// definition, tag constants, a positional MatchX function and an XVisitor
// interface. Both dispatchers list every variant in their signature, so a
// variant added to the YAML breaks every call site that does not handle it.
package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the file written when the config names none.
const DefaultOutput = "adt_gen.go"

// typeParam is the result type parameter of generated functions; no
// generated package-level name may shadow it.
const typeParam = "Out"

// Config is the top-level adt.yaml document.
type Config struct {
	// Package is the Go package clause of the generated file.
	Package string `yaml:"package"`

	// Output is the generated file name, relative to the config file.
	Output string `yaml:"output,omitempty"`

	Types []Type `yaml:"types"`
}

// Type is one sum type.
type Type struct {
	// Name is the exported Go name of the definition variable (e.g. "State").
	Name string `yaml:"name"`

	// Doc is an optional comment placed on the definition.
	Doc string `yaml:"doc,omitempty"`

	Variants []Variant `yaml:"variants"`
}

// Variant is one case of a sum type. A variant without fields carries
// adt.Unit.
type Variant struct {
	// Name is the tag (e.g. "loading"). Its Go name is the tag with the first
	// rune upper-cased.
	Name string `yaml:"name"`

	Fields []Field `yaml:"fields,omitempty"`
}

type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// GoName is the exported identifier derived from the tag.
func (v Variant) GoName() string {
	return exported(v.Name)
}

// LoadConfig reads and parses an adt.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses adt.yaml content. The path is used only in errors.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

func (c *Config) validate(path string) error {
	if c.Package == "" {
		return fmt.Errorf("%s: package is required", path)
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%s: package %q is not a valid identifier", path, c.Package)
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("%s: no types defined", path)
	}

	// every identifier the generated file declares at package level
	declared := make(map[string]string)
	declare := func(ident, owner string) error {
		if ident == typeParam {
			return fmt.Errorf("%s: %s declares %s, the type parameter of the generated Match and Visit", path, owner, ident)
		}
		if prev, ok := declared[ident]; ok {
			return fmt.Errorf("%s: %s declares %s, already declared by %s", path, owner, ident, prev)
		}
		declared[ident] = owner
		return nil
	}

	for i, typ := range c.Types {
		if typ.Name == "" {
			return fmt.Errorf("%s: types[%d]: name is required", path, i)
		}
		if !token.IsIdentifier(typ.Name) || !token.IsExported(typ.Name) {
			return fmt.Errorf("%s: types[%d]: name %q must be an exported identifier", path, i, typ.Name)
		}
		if len(typ.Variants) == 0 {
			return fmt.Errorf("%s: types[%d] (%s): no variants defined", path, i, typ.Name)
		}

		owner := fmt.Sprintf("types[%d] (%s)", i, typ.Name)
		for _, ident := range typ.idents() {
			if err := declare(ident, owner); err != nil {
				return err
			}
		}

		tags := make(map[string]bool)
		goNames := make(map[string]bool)
		for j, v := range typ.Variants {
			where := fmt.Sprintf("%s: types[%d].variants[%d] (%s.%s)", path, i, j, typ.Name, v.Name)
			if v.Name == "" {
				return fmt.Errorf("%s: types[%d].variants[%d]: name is required", path, i, j)
			}
			if !token.IsIdentifier(v.Name) || !token.IsExported(v.GoName()) {
				return fmt.Errorf("%s: name must be an identifier starting with a letter", where)
			}
			if tags[v.Name] {
				return fmt.Errorf("%s: duplicate variant", where)
			}
			tags[v.Name] = true
			if goNames[v.GoName()] {
				return fmt.Errorf("%s: Go name %s collides with another variant", where, v.GoName())
			}
			goNames[v.GoName()] = true

			for _, ident := range typ.variantIdents(v) {
				if err := declare(ident, where); err != nil {
					return err
				}
			}

			fields := make(map[string]bool)
			for k, f := range v.Fields {
				if f.Name == "" || f.Type == "" {
					return fmt.Errorf("%s: fields[%d]: name and type are required", where, k)
				}
				if !token.IsIdentifier(f.Name) {
					return fmt.Errorf("%s: fields[%d]: %q is not a valid identifier", where, k, f.Name)
				}
				if fields[f.Name] {
					return fmt.Errorf("%s: duplicate field %s", where, f.Name)
				}
				fields[f.Name] = true
				expr, err := parser.ParseExpr(f.Type)
				if err != nil {
					return fmt.Errorf("%s: field %s: type %q does not parse: %w", where, f.Name, f.Type, err)
				}
				if !isTypeExpr(expr) {
					return fmt.Errorf("%s: field %s: %q is not a type", where, f.Name, f.Type)
				}
			}
		}
	}
	return nil
}

// isTypeExpr reports whether e can only denote a type, or is a (qualified,
// possibly instantiated) name that may.
func isTypeExpr(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	case *ast.ParenExpr:
		return isTypeExpr(t.X)
	case *ast.StarExpr:
		return isTypeExpr(t.X)
	case *ast.ArrayType:
		return isTypeExpr(t.Elt)
	case *ast.MapType:
		return isTypeExpr(t.Key) && isTypeExpr(t.Value)
	case *ast.ChanType:
		return isTypeExpr(t.Value)
	case *ast.IndexExpr:
		return isTypeExpr(t.X) && isTypeExpr(t.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(t.X) {
			return false
		}
		for _, idx := range t.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}
		return true
	case *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	}
	return false
}

func (t Type) idents() []string {
	return []string{t.Name, t.casesName(), t.valueName(), "Match" + t.Name, t.visitorName(), "Visit" + t.Name}
}

func (t Type) variantIdents(v Variant) []string {
	idents := []string{t.tagName(v)}
	if len(v.Fields) > 0 {
		idents = append(idents, t.dataName(v))
	}
	return idents
}

func (t Type) casesName() string   { return t.Name + "Cases" }
func (t Type) valueName() string   { return t.Name + "Value" }
func (t Type) visitorName() string { return t.Name + "Visitor" }

func (t Type) tagName(v Variant) string {
	return t.Name + v.GoName() + "Tag"
}

func (t Type) dataName(v Variant) string {
	return t.Name + v.GoName()
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
