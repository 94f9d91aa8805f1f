package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// idl is the subset of the Anchor 0.30 IDL the generator reads.
type idl struct {
	Address  string `json:"address"`
	Metadata struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"metadata"`
	Instructions []instruction `json:"instructions"`
	Accounts     []accountDef  `json:"accounts"`
	Types        []typeDef     `json:"types"`
	Errors       []errorDef    `json:"errors"`
}

type instruction struct {
	Name          string         `json:"name"`
	Docs          []string       `json:"docs"`
	Discriminator []int          `json:"discriminator"`
	Accounts      []instrAccount `json:"accounts"`
	Args          []field        `json:"args"`
}

type instrAccount struct {
	Name     string `json:"name"`
	Writable bool   `json:"writable"`
	Signer   bool   `json:"signer"`
	PDA      *pda   `json:"pda"`
	Address  string `json:"address"`
}

// isSigner reports the signer flag; PDAs and fixed addresses never sign.
func (a instrAccount) isSigner() bool {
	return a.Signer && a.PDA == nil && a.Address == ""
}

type pda struct {
	Seeds   []seed `json:"seeds"`
	Program *seed  `json:"program"`
}

type seed struct {
	Kind  string `json:"kind"`
	Value []int  `json:"value"`
	Path  string `json:"path"`
}

// field returns the top-level account or arg name a seed path refers to.
func (s seed) field() string {
	head, _, _ := strings.Cut(s.Path, ".")
	return exported(head)
}

type field struct {
	Name string  `json:"name"`
	Type typeRef `json:"type"`
}

// tag is the binary struct tag; options are marked optional.
func (f field) tag() string {
	if f.Type.Kind == "option" {
		return f.Name + " optional"
	}
	return f.Name
}

type accountDef struct {
	Name          string `json:"name"`
	Discriminator []int  `json:"discriminator"`
}

type typeDef struct {
	Name string `json:"name"`
	Type struct {
		Kind   string            `json:"kind"`
		Fields []json.RawMessage `json:"fields"`
	} `json:"type"`
}

// fields decodes named fields; tuple fields become Field0, Field1, ...
func (t typeDef) fields() []field {
	out := make([]field, 0, len(t.Type.Fields))
	for i, raw := range t.Type.Fields {
		var f field
		if err := json.Unmarshal(raw, &f); err == nil && f.Name != "" {
			out = append(out, f)
			continue
		}
		f = field{Name: fmt.Sprintf("Field%d", i)}
		if err := json.Unmarshal(raw, &f.Type); err != nil {
			f.Type = typeRef{Kind: "unknown"}
		}
		out = append(out, f)
	}
	return out
}

type errorDef struct {
	Code uint32 `json:"code"`
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

// typeRef is an IDL type: a primitive name or one of
// {"option"|"vec": T}, {"array": [T, n]}, {"defined": {"name": N}}.
type typeRef struct {
	Kind    string
	Elem    *typeRef
	Len     int
	Defined string
}

func (t *typeRef) UnmarshalJSON(raw []byte) error {
	var prim string
	if err := json.Unmarshal(raw, &prim); err == nil {
		*t = typeRef{Kind: prim}
		return nil
	}
	var m struct {
		Option  *typeRef          `json:"option"`
		Vec     *typeRef          `json:"vec"`
		Array   []json.RawMessage `json:"array"`
		Defined *struct {
			Name string `json:"name"`
		} `json:"defined"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("type %s: %w", raw, err)
	}
	switch {
	case m.Option != nil:
		*t = typeRef{Kind: "option", Elem: m.Option}
	case m.Vec != nil:
		*t = typeRef{Kind: "vec", Elem: m.Vec}
	case len(m.Array) == 2:
		var elem typeRef
		if err := json.Unmarshal(m.Array[0], &elem); err != nil {
			return err
		}
		*t = typeRef{Kind: "array", Elem: &elem}
		if err := json.Unmarshal(m.Array[1], &t.Len); err != nil {
			return fmt.Errorf("array length %s: %w", m.Array[1], err)
		}
	case m.Defined != nil:
		*t = typeRef{Kind: "defined", Defined: m.Defined.Name}
	default:
		*t = typeRef{Kind: "unknown"}
	}
	return nil
}

var primitives = map[string]string{
	"bool":   "bool",
	"string": "string",
	"u8":     "uint8",
	"u16":    "uint16",
	"u32":    "uint32",
	"u64":    "uint64",
	"u128":   "bin.Uint128",
	"i32":    "int32",
	"i64":    "int64",
	"pubkey": "solana.PublicKey",
}

// Go renders the Go type for t.
func (t typeRef) Go() string {
	switch t.Kind {
	case "option":
		return "*" + t.Elem.Go()
	case "vec":
		return "[]" + t.Elem.Go()
	case "array":
		return fmt.Sprintf("[%d]%s", t.Len, t.Elem.Go())
	case "defined":
		return exported(t.Defined)
	}
	if g, ok := primitives[t.Kind]; ok {
		return g
	}
	return "interface{}"
}

// imports adds the import aliases t needs ("solana", "bin") to set.
func (t typeRef) imports(set map[string]bool) {
	if t.Elem != nil {
		t.Elem.imports(set)
		return
	}
	switch g := t.Go(); {
	case strings.HasPrefix(g, "solana."):
		set["solana"] = true
	case strings.HasPrefix(g, "bin."):
		set["bin"] = true
	}
}

// exported converts snake_case or kebab-case to an exported Go name.
func exported(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
