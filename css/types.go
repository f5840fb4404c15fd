package css

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Value is a parsed declaration value. Numeric values keep unit as written,
// everything else ends up in Keyword.
type Value struct {
	Raw     string
	Value   float64
	Unit    string
	Keyword string
}

// IsNumeric returns true if value carries a number.
func (v Value) IsNumeric() bool {
	return v.Keyword == "" && v.Raw != ""
}

// Points converts length to typographic points. Relative units are resolved
// against base size.
func (v Value) Points(base float64) (float64, error) {
	if !v.IsNumeric() {
		return 0, fmt.Errorf("not a length: %q", v.Raw)
	}
	switch v.Unit {
	case "pt", "":
		return v.Value, nil
	case "px":
		return v.Value * 0.75, nil
	case "mm":
		return v.Value * ptPerMM, nil
	case "cm":
		return v.Value * ptPerMM * 10, nil
	case "in":
		return v.Value * 72, nil
	case "em", "rem":
		return v.Value * base, nil
	case "%":
		return v.Value * base / 100, nil
	}
	return 0, fmt.Errorf("unsupported unit %q", v.Unit)
}

// Millimeters converts length to page units.
func (v Value) Millimeters(base float64) (float64, error) {
	pt, err := v.Points(base)
	if err != nil {
		return 0, err
	}
	return pt / ptPerMM, nil
}

const ptPerMM = 72 / 25.4

// Rule is a single class rule. Only simple selectors survive parsing.
type Rule struct {
	Selector   string
	Properties map[string]Value
}

// Stylesheet is what is left of user stylesheet after parsing, in source order.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesBySelector returns all rules for the given selector in source order.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.Selector == selector {
			out = append(out, r)
		}
	}
	return out
}

func (s *Stylesheet) String() string {
	var sb strings.Builder
	for _, r := range s.Rules {
		fmt.Fprintf(&sb, "%s {", r.Selector)
		for _, name := range slices.Sorted(maps.Keys(r.Properties)) {
			fmt.Fprintf(&sb, " %s: %s;", name, r.Properties[name].Raw)
		}
		sb.WriteString(" }\n")
	}
	return sb.String()
}
