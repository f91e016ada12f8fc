package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// AdtImportPath is the import path of the runtime package generated code
// depends on.
const AdtImportPath = "github.com/ib-77/adt/pkg/adt"

// Generator renders configs to Go source.
type Generator struct {
	importPath string
	tmpl       *template.Template
}

func NewGenerator() *Generator {
	return &Generator{
		importPath: AdtImportPath,
		tmpl:       template.Must(template.New("adt").Parse(fileTemplate)),
	}
}

type fileView struct {
	Package string
	Import  string
	Types   []typeView
}

type typeView struct {
	Name     string
	Doc      string
	Cases    string
	Value    string
	Visitor  string
	Variants []variantView
}

type variantView struct {
	Tag      string
	GoName   string
	TagConst string
	Data     string
	Struct   bool
	Fields   []Field
}

// Generate returns the formatted source for cfg, to be written to filename.
// Packages referenced by field types (e.g. time.Time) are imported
// automatically, resolved from filename's directory; an empty filename
// falls back to cfg.Output.
func (g *Generator) Generate(cfg *Config, filename string) ([]byte, error) {
	if filename == "" {
		filename = cfg.Output
	}

	view := fileView{Package: cfg.Package, Import: g.importPath}
	for _, t := range cfg.Types {
		view.Types = append(view.Types, newTypeView(t))
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}
	return out, nil
}

func newTypeView(t Type) typeView {
	tv := typeView{
		Name:    t.Name,
		Doc:     comment(t.Doc, fmt.Sprintf("%s is the definition of the %s sum type.", t.Name, t.Name)),
		Cases:   t.casesName(),
		Value:   t.valueName(),
		Visitor: t.visitorName(),
	}
	for _, v := range t.Variants {
		vv := variantView{
			Tag:      v.Name,
			GoName:   v.GoName(),
			TagConst: t.tagName(v),
			Data:     "adt.Unit",
		}
		if len(v.Fields) > 0 {
			vv.Data = t.dataName(v)
			vv.Struct = true
			vv.Fields = v.Fields
		}
		tv.Variants = append(tv.Variants, vv)
	}
	return tv
}

func comment(doc, fallback string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		doc = fallback
	}
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}

const fileTemplate = `// Code generated by adtgen. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"
{{range $t := .Types}}{{range .Variants}}{{if .Struct}}
// {{.Data}} is the data of the {{printf "%q" .Tag}} variant of {{$t.Name}}.
type {{.Data}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{end}}{{end}}
// {{.Cases}} lists the variants of {{.Name}}.
type {{.Cases}} struct {
{{- range .Variants}}
	{{.GoName}} adt.Constructor[{{$t.Cases}}, {{.Data}}] ` + "`" + `adt:"{{.Tag}}"` + "`" + `
{{- end}}
}

// {{.Value}} is an instance of {{.Name}}.
type {{.Value}} = adt.Variant[{{.Cases}}]

const (
{{- range .Variants}}
	{{.TagConst}} adt.Tag = {{printf "%q" .Tag}}
{{- end}}
)

{{.Doc}}
var {{.Name}} = adt.MustCases[{{.Cases}}](adt.WithName({{printf "%q" .Name}}))

// Match{{.Name}} calls the handler of v's variant. Every variant has a
// parameter, so adding one breaks callers that do not handle it.
func Match{{.Name}}[Out any](v {{.Value}},
{{- range .Variants}}
	on{{.GoName}} func({{.Data}}) Out,
{{- end}}
) Out {
	cases := {{.Name}}.Cases()
	switch v.Tag() {
{{- range .Variants}}
	case {{.TagConst}}:
		return on{{.GoName}}(cases.{{.GoName}}.MustData(v))
{{- end}}
	default:
		return adt.Unreachable[Out](v)
	}
}

// {{.Visitor}} handles every variant of {{.Name}}.
type {{.Visitor}}[Out any] interface {
{{- range .Variants}}
	{{.GoName}}({{.Data}}) Out
{{- end}}
}

// Visit{{.Name}} dispatches v to the visitor method of its variant.
func Visit{{.Name}}[Out any](v {{.Value}}, visitor {{.Visitor}}[Out]) Out {
	return Match{{.Name}}(v{{range .Variants}}, visitor.{{.GoName}}{{end}})
}
{{end}}`
