package generate

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"ksefpdf/config"
	"ksefpdf/document"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Base     string
	Type     string
	Variant  string
	Number   string
	Registry string
	Date     string
}

func buildValues(src string, env document.Envelope, add document.AdditionalData) Values {
	v := Values{
		Base:     strings.TrimSuffix(path.Base(src), path.Ext(src)),
		Registry: add.RegistryNumber,
	}
	if env == nil {
		return v
	}
	v.Type, v.Variant = env.Kind().String(), env.String()

	switch e := env.(type) {
	case document.Invoice:
		v.Number = e.Root.Value("Faktura", "Fa", "P_2")
		v.Date = e.Root.Value("Faktura", "Fa", "P_1")
	case document.Receipt:
		v.Number = e.Root.Value("Potwierdzenie", "NumerReferencyjnySesji")
		// date part of the first submission timestamp
		v.Date, _, _ = strings.Cut(e.Root.Value("Potwierdzenie", "Dokument", "DataPrzeslaniaDokumentu"), "T")
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
