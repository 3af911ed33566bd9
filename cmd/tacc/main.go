package main

import (
	"fmt"
	"os"

	"tacc/internal/ast"
	"tacc/internal/checker"
	"tacc/internal/interp"
	"tacc/internal/ir"
	"tacc/internal/irgen"
	"tacc/internal/lexer"
	"tacc/internal/optimizer"
	"tacc/internal/parser"
	"tacc/internal/utils"
)

type options struct {
	sourceFile  string
	outputFile  string
	printTokens bool
	printAST    bool
	optimize    bool
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tacc <source file> [options]")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -tokens    print the token list")
	fmt.Fprintln(os.Stderr, "  -ast       print the syntax tree")
	fmt.Fprintln(os.Stderr, "  -noopt     disable optimization")
	fmt.Fprintln(os.Stderr, "  -o <file>  write the TAC listing to a file")
}

// parseOptions reads the argument list after the program name. ok is false
// on a missing source file, an unknown option or a -o without a path.
func parseOptions(args []string) (opts options, ok bool) {
	if len(args) < 1 {
		return opts, false
	}
	opts.sourceFile = args[0]
	opts.optimize = true

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-tokens":
			opts.printTokens = true
		case "-ast":
			opts.printAST = true
		case "-noopt":
			opts.optimize = false
		case "-o":
			if i+1 >= len(args) {
				return opts, false
			}
			i++
			opts.outputFile = args[i]
		default:
			return opts, false
		}
	}
	return opts, true
}

func phase(name string) {
	fmt.Printf("► %s\n", name)
}

func success(format string, args ...any) {
	fmt.Printf("  ✓ %s\n", fmt.Sprintf(format, args...))
}

func main() {
	opts, ok := parseOptions(os.Args[1:])
	if !ok {
		usage()
		os.Exit(1)
	}

	src, err := os.ReadFile(opts.sourceFile)
	if err != nil {
		utils.Error(fmt.Sprintf("cannot read %s: %v", opts.sourceFile, err))
		os.Exit(1)
	}

	if opts.printTokens {
		fmt.Println("=== TOKEN LIST ===")
		l := lexer.New(string(src))
		for tok := l.NextToken(); tok.Type != lexer.EOF; tok = l.NextToken() {
			fmt.Printf("  [%s] %q (line %d, col %d)\n", tok.Type, tok.Literal, tok.Line, tok.Column)
		}
	}

	phase("Syntax Analysis")
	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			utils.Error(e)
		}
		os.Exit(1)
	}
	success("%d statements", len(program.Statements))

	if opts.printAST {
		fmt.Println("=== AST ===")
		fmt.Print(ast.Dump(program))
	}

	phase("Semantic Analysis")
	c := checker.New()
	accepted := c.Check(program)
	for _, w := range c.Warnings() {
		utils.Warning(w)
	}
	if !accepted {
		for _, e := range c.Errors() {
			utils.Error(e)
		}
		os.Exit(1)
	}
	success("accepted, %d warnings", len(c.Warnings()))

	phase("Code Generation")
	prog := irgen.New().Generate(program)
	success("%d instructions, %d variables", len(prog.Instrs), len(prog.Vars))

	if opts.optimize {
		phase("Optimization")
		optimized := optimizer.Optimize(prog)
		if removed := len(prog.Instrs) - len(optimized.Instrs); removed > 0 {
			success("%d instructions removed", removed)
		} else {
			success("nothing to remove")
		}
		prog = optimized
	}

	fmt.Println("=== THREE-ADDRESS CODE (TAC) ===")
	fmt.Print(prog.String())
	fmt.Println("=== VARIABLE TABLE ===")
	fmt.Print(prog.VarTable())

	if opts.outputFile != "" {
		if err := writeListing(opts.outputFile, prog); err != nil {
			utils.Error(fmt.Sprintf("cannot write %s: %v", opts.outputFile, err))
			os.Exit(1)
		}
		fmt.Printf("TAC saved to: %s\n", opts.outputFile)
	}

	phase("Interpretation")
	machine := interp.New()
	ok = machine.Execute(prog)
	fmt.Println("=== EXECUTION ===")
	for _, line := range machine.Output() {
		fmt.Println(line)
	}
	if !ok {
		utils.Error(fmt.Sprintf("runtime error: %v", machine.Err()))
		os.Exit(1)
	}
}

func writeListing(path string, prog *ir.Program) error {
	listing := "=== THREE-ADDRESS CODE (TAC) ===\n\n" + prog.String() +
		"\n=== VARIABLE TABLE ===\n" + prog.VarTable()
	return os.WriteFile(path, []byte(listing), 0644)
}
