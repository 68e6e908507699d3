package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chewxy/sexp"

	kisexp "github.com/OpenTraceLab/netbom/pkg/kicad/sexp"
	"github.com/OpenTraceLab/netbom/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-netlist <netlist_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File size: %d bytes\n", len(data))
	preview := string(data)
	if len(preview) > 100 {
		preview = preview[:100]
	}
	fmt.Printf("First 100 chars: %s\n", strings.ReplaceAll(preview, "\n", " "))

	// Reference parse with the general-purpose parser
	fmt.Println("\nchewxy/sexp:")
	refCount := -1
	sexps, err := sexp.ParseString(string(data))
	if err != nil {
		fmt.Printf("  Error parsing s-expression: %v\n", err)
	} else {
		fmt.Printf("  Number of s-expressions: %d\n", len(sexps))
		if len(sexps) > 0 {
			fmt.Printf("  First sexp type: %T\n", sexps[0])
			fmt.Printf("  Is leaf: %v\n", sexps[0].IsLeaf())
			if !sexps[0].IsLeaf() {
				refCount = sexps[0].LeafCount()
				fmt.Printf("  Leaf count: %d\n", refCount)
			}
		}
	}

	// Our tokenizer
	fmt.Println("\nkicadsexp:")
	exprs, err := kicadsexp.ParseString(string(data))
	if err != nil {
		fmt.Printf("  Error parsing s-expression: %v\n", err)
	} else {
		fmt.Printf("  Number of s-expressions: %d\n", len(exprs))
		if len(exprs) > 0 {
			direct := exprs[0].LeafCount()
			atoms := countLeaves(exprs[0])
			fmt.Printf("  Leaf count: %d (%d atoms in total)\n", direct, atoms)
			if refCount >= 0 && refCount != direct && refCount != atoms {
				fmt.Printf("  Note: chewxy leaf count %d matches neither\n", refCount)
			}
			printSections(exprs[0])
		}
	}

	// Netlist model
	fmt.Println("\nnetlist:")
	nl, err := netlist.Read(strings.NewReader(string(data)), netlist.FormatAuto)
	if err != nil {
		fmt.Printf("  Error loading netlist: %v\n", err)
		os.Exit(1)
	}
	d := nl.Design()
	fmt.Printf("  Source: %s\n", d.Source)
	fmt.Printf("  Tool: %s\n", d.Tool)
	fmt.Printf("  Components: %d\n", len(nl.Components()))
	fmt.Printf("  Library parts: %d\n", len(nl.LibParts()))
	fmt.Printf("  Nets: %d\n", len(nl.Nets()))

	unresolved := 0
	for _, c := range nl.Components() {
		if c.LibPart == nil && !strings.HasPrefix(c.Ref, "#") {
			unresolved++
			if unresolved <= 5 {
				fmt.Printf("  Unresolved lib part: %s (%s)\n", c.Ref, c.LibPartName())
			}
		}
	}
	if unresolved > 0 {
		fmt.Printf("  Components without lib part: %d\n", unresolved)
	}

	dangling := 0
	for _, n := range nl.Nets() {
		for _, node := range n.Nodes {
			if nl.Component(node.Ref) == nil {
				dangling++
				if dangling <= 5 {
					fmt.Printf("  Net %q references unknown component %s\n", n.Name, node.Ref)
				}
			}
		}
	}
	if dangling > 0 {
		fmt.Printf("  Dangling net nodes: %d\n", dangling)
	}
}

func countLeaves(s kicadsexp.Sexp) int {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return 1
	}
	n := 0
	for _, item := range list.Items() {
		n += countLeaves(item)
	}
	return n
}

// printSections lists the top-level sections of an (export ...) tree and
// flags nets whose code is not numeric.
func printSections(root kicadsexp.Sexp) {
	for _, item := range kisexp.GetListItems(root) {
		name, err := kisexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}
		fmt.Printf("  Section %s: %d entries\n", name, len(kisexp.GetListItems(item)))
	}

	nets, found := kisexp.FindNode(root, "nets")
	if !found {
		return
	}
	for _, n := range kisexp.FindAllNodes(nets, "net") {
		code, found := kisexp.FindNode(n, "code")
		if !found {
			continue
		}
		if _, err := kisexp.GetInt(code, 1); err != nil {
			fmt.Printf("  Net %q: %v\n", kisexp.GetKeyedString(n, "name"), err)
		}
	}
}
