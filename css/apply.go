package css

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"ksefpdf/layout"
)

// known lists classes stylesheet may refer to, "body" stands for the base
// style.
var known = map[string]layout.Class{
	"body":         layout.ClassBody,
	"title":        layout.ClassTitle,
	"subtitle":     layout.ClassSubtitle,
	"heading":      layout.ClassHeading,
	"label":        layout.ClassLabel,
	"table-header": layout.ClassTableHeader,
	"table-cell":   layout.ClassTableCell,
	"small":        layout.ClassSmall,
}

// Apply merges rules into dst in source order. Base font size is settled
// first so relative units in class rules resolve against the final value.
// All problems are collected, valid declarations are applied regardless.
func (s *Stylesheet) Apply(dst *layout.StyleSheet) error {
	var err error

	for _, r := range s.RulesBySelector("body") {
		err = multierr.Append(err, applyBody(dst, r))
	}

	for _, r := range s.Rules {
		if r.Selector == "body" {
			continue
		}
		class, ok := known[strings.TrimPrefix(r.Selector, ".")]
		if !ok || class == layout.ClassBody {
			err = multierr.Append(err, fmt.Errorf("unknown class %q", r.Selector))
			continue
		}
		if dst.Classes == nil {
			dst.Classes = make(map[layout.Class]layout.Style)
		}
		st := dst.Classes[class]
		for name, v := range r.Properties {
			err = multierr.Append(err, applyProperty(&st, dst.BaseSize, name, v))
		}
		dst.Classes[class] = st
	}
	return err
}

func applyBody(dst *layout.StyleSheet, r Rule) error {
	var err error
	for name, v := range r.Properties {
		switch name {
		case "font-size":
			size, e := v.Points(dst.BaseSize)
			if e != nil || size <= 0 {
				err = multierr.Append(err, fmt.Errorf("body: bad font-size %q", v.Raw))
				continue
			}
			dst.BaseSize = size
		case "line-height":
			if !v.IsNumeric() || v.Unit != "" || v.Value <= 0 {
				err = multierr.Append(err, fmt.Errorf("body: line-height must be unitless ratio, got %q", v.Raw))
				continue
			}
			dst.LineHeight = v.Value
		case "font-family":
			family, _, _ := strings.Cut(v.Keyword, ",")
			dst.Font = strings.Trim(strings.TrimSpace(family), `"'`)
		default:
			err = multierr.Append(err, fmt.Errorf("body: unsupported property %q", name))
		}
	}
	return err
}

func applyProperty(st *layout.Style, base float64, name string, v Value) error {
	switch name {
	case "font-size":
		size, err := v.Points(base)
		if err != nil || size <= 0 {
			return fmt.Errorf("bad font-size %q", v.Raw)
		}
		st.Size = size
	case "font-weight":
		switch {
		case v.Keyword == "bold" || v.Keyword == "bolder" || (v.IsNumeric() && v.Value >= 600):
			st.Bold = true
		case v.Keyword == "normal" || v.Keyword == "lighter" || v.IsNumeric():
			st.Bold = false
		default:
			return fmt.Errorf("bad font-weight %q", v.Raw)
		}
	case "font-style":
		switch v.Keyword {
		case "italic", "oblique":
			st.Italic = true
		case "normal":
			st.Italic = false
		default:
			return fmt.Errorf("bad font-style %q", v.Raw)
		}
	case "margin-top", "margin-bottom":
		mm, err := v.Millimeters(base)
		if err != nil || mm < 0 {
			return fmt.Errorf("bad %s %q", name, v.Raw)
		}
		if name == "margin-top" {
			st.SpaceBefore = mm
		} else {
			st.SpaceAfter = mm
		}
	default:
		return fmt.Errorf("unsupported property %q", name)
	}
	return nil
}
