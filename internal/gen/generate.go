package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
)

type genFile struct {
	name    string
	content []byte
}

// generate renders every output file for doc.
func generate(pkg string, doc idl) ([]genFile, error) {
	steps := []struct {
		name string
		emit func(*generator)
	}{
		{"program.go", (*generator).program},
		{"types.go", (*generator).types},
		{"accounts.go", (*generator).accounts},
		{"instructions.go", (*generator).instructions},
		{"errors.go", (*generator).errors},
	}
	out := make([]genFile, 0, len(steps))
	for _, s := range steps {
		g := &generator{pkg: pkg, doc: doc}
		g.header()
		s.emit(g)
		src, err := format.Source(g.buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w\n%s", s.name, err, g.buf.Bytes())
		}
		out = append(out, genFile{name: s.name, content: src})
	}
	return out, nil
}

type generator struct {
	pkg string
	doc idl
	buf bytes.Buffer
}

// P prints its arguments followed by a newline.
func (g *generator) P(v ...interface{}) {
	for _, x := range v {
		fmt.Fprint(&g.buf, x)
	}
	g.buf.WriteByte('\n')
}

func (g *generator) imports(paths ...string) {
	g.P("import (")
	for _, p := range paths {
		g.P("\t", p)
	}
	g.P(")")
	g.P()
}

func (g *generator) header() {
	g.P("// Code generated by internal/gen; DO NOT EDIT.")
	g.P()
	g.P("package ", g.pkg)
	g.P()
}

const (
	importSolana = `"github.com/gagliardetto/solana-go"`
	importBin    = `bin "github.com/gagliardetto/binary"`
)

func (g *generator) program() {
	g.P("import ", importSolana)
	g.P()
	g.P("// ProgramID is the default deployment. Builders take the program ID explicitly")
	g.P("// so other deployments can be targeted.")
	g.P("const ProgramID string = ", strconv.Quote(g.doc.Address))
	g.P("const ProgramName string = ", strconv.Quote(g.doc.Metadata.Name))
	g.P("const ProgramVersion string = ", strconv.Quote(g.doc.Metadata.Version))
	g.P()
	g.P("var ProgramKey = solana.MustPublicKeyFromBase58(ProgramID)")
}

func (g *generator) structTypes() []typeDef {
	var out []typeDef
	for _, t := range g.doc.Types {
		if t.Type.Kind == "struct" {
			out = append(out, t)
		}
	}
	return out
}

func (g *generator) types() {
	need := map[string]bool{}
	for _, t := range g.structTypes() {
		for _, f := range t.fields() {
			f.Type.imports(need)
		}
	}
	var paths []string
	if need["solana"] {
		paths = append(paths, importSolana)
	}
	if need["bin"] {
		paths = append(paths, importBin)
	}
	if len(paths) > 0 {
		g.imports(paths...)
	}

	for _, t := range g.structTypes() {
		g.P("type ", exported(t.Name), " struct {")
		for _, f := range t.fields() {
			g.P("\t", exported(f.Name), " ", f.Type.Go(), " `bin:\"", f.tag(), "\"`")
		}
		g.P("}")
		g.P()
	}
}

func (g *generator) accounts() {
	g.imports(`"bytes"`, `"fmt"`, "", importBin)

	defined := map[string]bool{}
	for _, t := range g.doc.Types {
		defined[t.Name] = true
	}
	for _, acc := range g.doc.Accounts {
		name := exported(acc.Name)
		g.P("var ", name, "Discriminator = ", bytesLiteral(acc.Discriminator))
		g.P()
		if !defined[acc.Name] {
			g.P("type ", name, " struct{}")
			g.P()
		}
		g.P("func (a *", name, ") Unmarshal(data []byte) error {")
		g.P("\tif len(data) < 8 {")
		g.P("\t\treturn fmt.Errorf(\"account ", acc.Name, ": data too short\")")
		g.P("\t}")
		g.P("\tif !bytes.Equal(data[:8], ", name, "Discriminator) {")
		g.P("\t\treturn fmt.Errorf(\"account ", acc.Name, ": discriminator mismatch\")")
		g.P("\t}")
		g.P("\tdec := bin.NewBorshDecoder(data[8:])")
		g.P("\treturn dec.Decode(a)")
		g.P("}")
		g.P()
	}
}

func (g *generator) hasArgSeed() bool {
	for _, ins := range g.doc.Instructions {
		for _, acc := range ins.Accounts {
			if acc.PDA == nil {
				continue
			}
			for _, s := range acc.PDA.Seeds {
				if s.Kind == "arg" {
					return true
				}
			}
		}
	}
	return false
}

func (g *generator) instructions() {
	paths := []string{`"bytes"`}
	if g.hasArgSeed() {
		paths = append(paths, `"encoding/binary"`)
	}
	paths = append(paths, `"fmt"`, "", importBin, importSolana)
	g.imports(paths...)

	for _, ins := range g.doc.Instructions {
		g.instruction(ins)
	}
}

func (g *generator) instruction(ins instruction) {
	name := exported(ins.Name)
	g.P("var ", name, "Discriminator = ", bytesLiteral(ins.Discriminator))
	g.P()

	if len(ins.Args) == 0 {
		g.P("type ", name, "Args struct{}")
	} else {
		g.P("type ", name, "Args struct {")
		for _, a := range ins.Args {
			g.P("\t", exported(a.Name), " ", a.Type.Go(), " `bin:\"", a.tag(), "\"`")
		}
		g.P("}")
	}
	g.P()

	g.P("type ", name, "Accounts struct {")
	for _, acc := range ins.Accounts {
		g.P("\t", exported(acc.Name), " solana.PublicKey")
	}
	g.P("}")
	g.P()

	g.P("func (a ", name, "Accounts) ToAccountMetas() []*solana.AccountMeta {")
	g.P("\tmetas := make([]*solana.AccountMeta, 0, ", len(ins.Accounts), ")")
	for _, acc := range ins.Accounts {
		key := "a." + exported(acc.Name)
		if acc.Address != "" {
			fn := "default" + name + exported(acc.Name)
			g.P("\tvar ", fn, " = func() solana.PublicKey {")
			g.P("\t\treturn solana.MustPublicKeyFromBase58(", strconv.Quote(acc.Address), ")")
			g.P("\t}")
			key = fn + "()"
		}
		g.P("\tmetas = append(metas, solana.NewAccountMeta(", key, ", ", acc.Writable, ", ", acc.isSigner(), "))")
	}
	g.P("\treturn metas")
	g.P("}")
	g.P()

	for i, d := range ins.Docs {
		if i == 0 && d != "" {
			d = "Build" + name + " " + strings.ToLower(d[:1]) + d[1:]
		}
		g.P("// ", d)
	}
	g.P("func Build", name, "(programID solana.PublicKey, accounts ", name, "Accounts, args ", name, "Args) (solana.Instruction, error) {")
	g.P("\tbuf := bytes.NewBuffer(make([]byte, 0, 128))")
	g.P("\tbuf.Write(", name, "Discriminator)")
	if len(ins.Args) > 0 {
		g.P("\tif err := bin.NewBorshEncoder(buf).Encode(args); err != nil {")
		g.P("\t\treturn nil, fmt.Errorf(\"encode args: %w\", err)")
		g.P("\t}")
	}
	g.P("\tdata := buf.Bytes()")
	g.P("\treturn solana.NewInstruction(programID, accounts.ToAccountMetas(), data), nil")
	g.P("}")
	g.P()

	for _, acc := range ins.Accounts {
		if acc.PDA != nil && len(acc.PDA.Seeds) > 0 {
			g.derive(name, acc)
		}
	}
}

func (g *generator) derive(ins string, acc instrAccount) {
	g.P("func Derive", ins, exported(acc.Name), "PDA(programID solana.PublicKey, accounts ", ins, "Accounts, args ", ins, "Args) (solana.PublicKey, uint8, error) {")
	g.P("\tseeds := make([][]byte, 0, ", len(acc.PDA.Seeds), ")")
	for _, s := range acc.PDA.Seeds {
		switch s.Kind {
		case "const":
			g.P("\tseeds = append(seeds, ", bytesLiteral(s.Value), ")")
		case "account":
			g.P("\tseeds = append(seeds, accounts.", s.field(), "[:])")
		case "arg":
			// numeric args are encoded as u64 little endian
			g.P("\t{")
			g.P("\t\ttmp := make([]byte, 8)")
			g.P("\t\tbinary.LittleEndian.PutUint64(tmp, uint64(args.", s.field(), "))")
			g.P("\t\tseeds = append(seeds, tmp)")
			g.P("\t}")
		}
	}
	prog := "programID"
	if p := acc.PDA.Program; p != nil {
		switch {
		case len(p.Value) > 0:
			prog = "solana.PublicKeyFromBytes(" + bytesLiteral(p.Value) + ")"
		case p.Kind == "account" && p.Path != "":
			prog = "accounts." + p.field()
		}
	}
	g.P("\treturn solana.FindProgramAddress(seeds, ", prog, ")")
	g.P("}")
	g.P()
}

func (g *generator) errors() {
	g.P("type ProgramError struct {")
	g.P("\tCode uint32")
	g.P("\tName string")
	g.P("\tMsg  string")
	g.P("}")
	g.P()
	g.P("var Errors = map[uint32]ProgramError{")
	for _, e := range g.doc.Errors {
		g.P(fmt.Sprintf("\t%d: {Code: %d, Name: %q, Msg: %q},", e.Code, e.Code, e.Name, e.Msg))
	}
	g.P("}")
	g.P()
	g.P("func ErrorFromCode(code uint32) (ProgramError, bool) {")
	g.P("\terr, ok := Errors[code]")
	g.P("\treturn err, ok")
	g.P("}")
}

func bytesLiteral(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[]byte{" + strings.Join(parts, ", ") + "}"
}
