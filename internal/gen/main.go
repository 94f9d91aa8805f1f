// Command gen writes Go bindings for an Anchor program from its IDL:
// program constants, account and arg types, borsh account decoders,
// instruction builders with PDA helpers, and the error table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	idlPath := flag.String("idl", "", "path to IDL json")
	outDir := flag.String("out", "", "output directory")
	pkgName := flag.String("pkg", "", "package name")
	flag.Parse()

	if err := run(*idlPath, *outDir, *pkgName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(idlPath, outDir, pkg string) error {
	if idlPath == "" || outDir == "" || pkg == "" {
		return fmt.Errorf("idl, out, and pkg flags are required")
	}
	raw, err := os.ReadFile(idlPath)
	if err != nil {
		return fmt.Errorf("read idl: %w", err)
	}
	var doc idl
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse idl: %w", err)
	}
	files, err := generate(pkg, doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir out: %w", err)
	}
	for _, f := range files {
		target := filepath.Join(outDir, f.name)
		if err := os.WriteFile(target, f.content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		fmt.Printf("generated %s\n", target)
	}
	return nil
}
