package colorscheme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/rzbill/flash/pkg/level"
)

type styleJSON struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Style      string `json:"style"`
}

type levelJSON struct {
	Normal    *styleJSON `json:"normal,omitempty"`
	Highlight *styleJSON `json:"highlight,omitempty"`
}

// Load reads a scheme from a JSON document. Unknown level names and field
// names are skipped; missing special styles fall back to the built-in
// defaults.
func Load(path string) (*Scheme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load color scheme: %w", err)
	}
	s, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("load color scheme: %w", err)
	}
	return s, nil
}

func parse(b []byte) (*Scheme, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	s := &Scheme{special: map[string]Style{}, order: DefaultFieldOrder()}

	// The special section resolves first so level entries can inherit
	// from its default style.
	if raw, ok := doc["special"]; ok {
		var specials map[string]styleJSON
		if err := json.Unmarshal(raw, &specials); err != nil {
			return nil, fmt.Errorf("special: %w", err)
		}
		for name, sj := range specials {
			s.special[name] = sj.resolveSpecial()
		}
	}
	fillMissingSpecials(s.special)
	def := s.special[SpecialDefault]

	for name, raw := range doc {
		if name == "special" || name == "fields" {
			continue
		}
		l, err := level.FromName(name)
		if err != nil {
			continue // not a level entry
		}
		var lj levelJSON
		if err := json.Unmarshal(raw, &lj); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if lj.Normal != nil {
			s.normal[l] = lj.Normal.resolve(def)
		}
		if lj.Highlight != nil {
			s.highlight[l] = lj.Highlight.resolve(def)
		}
	}

	if raw, ok := doc["fields"]; ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		order := make([]Field, 0, len(names))
		for _, n := range names {
			f, err := ParseField(n)
			if err != nil {
				continue
			}
			order = append(order, f)
		}
		if len(order) > 0 {
			s.order = order
		}
	}
	return s, nil
}

func fillMissingSpecials(special map[string]Style) {
	if _, ok := special[SpecialDefault]; !ok {
		special[SpecialDefault] = Style{Foreground: "LIGHTWHITE_EX"}
	}
	def := special[SpecialDefault]
	if _, ok := special[SpecialBracket]; !ok {
		special[SpecialBracket] = def
	}
	if _, ok := special[SpecialTimestamp]; !ok {
		special[SpecialTimestamp] = def
	}
	if _, ok := special[SpecialOperator]; !ok {
		special[SpecialOperator] = Style{Foreground: "YELLOW"}
	}
	if _, ok := special[SpecialProcess]; !ok {
		special[SpecialProcess] = Style{Foreground: "CYAN"}
	}
	if _, ok := special[SpecialComment]; !ok {
		special[SpecialComment] = Style{Foreground: "LIGHTBLACK_EX"}
	}
}

// resolveSpecial maps a special entry to a style. Unknown foregrounds fall
// back to white, unknown backgrounds stay unset and unknown intensities
// become normal.
func (sj styleJSON) resolveSpecial() Style {
	st := Style{Foreground: "WHITE"}
	if _, ok := foregroundAttr(sj.Foreground); ok {
		st.Foreground = strings.ToUpper(sj.Foreground)
	}
	if _, ok := backgroundAttr(sj.Background); ok {
		st.Background = strings.ToUpper(sj.Background)
	}
	if in, ok := parseIntensity(sj.Style); ok {
		st.Intensity = in
	}
	return st
}

// resolve maps a level entry to a style. Empty or "default" components
// inherit from the special default style.
func (sj *styleJSON) resolve(def Style) Style {
	var st Style
	switch fg := strings.ToUpper(strings.TrimSpace(sj.Foreground)); fg {
	case "", "DEFAULT":
		st.Foreground = def.Foreground
	default:
		if _, ok := foregroundAttr(fg); ok {
			st.Foreground = fg
		} else {
			st.Foreground = "WHITE"
		}
	}
	switch bg := strings.ToUpper(strings.TrimSpace(sj.Background)); bg {
	case "", "DEFAULT":
		st.Background = def.Background
	default:
		if _, ok := backgroundAttr(bg); ok {
			st.Background = bg
		} else {
			st.Background = "BLACK"
		}
	}
	switch sty := strings.ToUpper(strings.TrimSpace(sj.Style)); sty {
	case "", "DEFAULT":
		st.Intensity = def.Intensity
	default:
		in, _ := parseIntensity(sty)
		st.Intensity = in
	}
	return st
}

func canonicalColor(name string, table map[string]color.Attribute) string {
	u := strings.ToUpper(name)
	if _, ok := table[u]; ok {
		return u
	}
	return ""
}

func styleOut(st Style) *styleJSON {
	return &styleJSON{
		Foreground: canonicalColor(st.Foreground, foregrounds),
		Background: canonicalColor(st.Background, backgrounds),
		Style:      st.Intensity.String(),
	}
}

type pair struct {
	key string
	val any
}

// marshalOrdered emits a JSON object with keys in the given order, which
// encoding/json does not do for maps.
func marshalOrdered(pairs []pair) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.val)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Save writes the scheme as a JSON document, levels first, then the
// special section and the field order.
func (s *Scheme) Save(path string) error {
	s.mu.RLock()
	root := make([]pair, 0, identityCount+2)
	for _, l := range level.All() {
		root = append(root, pair{l.String(), levelJSON{
			Normal:    styleOut(s.normal[l]),
			Highlight: styleOut(s.highlight[l]),
		}})
	}
	specials := make([]pair, 0, len(SpecialNames()))
	for _, name := range SpecialNames() {
		specials = append(specials, pair{name, styleOut(s.special[name])})
	}
	fields := make([]string, 0, len(s.order))
	for _, f := range s.order {
		fields = append(fields, f.String())
	}
	s.mu.RUnlock()

	specialObj, err := marshalOrdered(specials)
	if err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	root = append(root, pair{"special", specialObj}, pair{"fields", fields})
	compact, err := marshalOrdered(root)
	if err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	out.WriteByte('\n')
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	return nil
}
