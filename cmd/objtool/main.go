// objtool is a CLI utility for inspecting and validating OBJ meshes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/field-of-cows/internal/jobs"
	"github.com/Faultbox/field-of-cows/pkg/formats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) < 1 {
		printUsage(stderr)
		return 1
	}

	command := argv[0]
	args := argv[1:]

	switch command {
	case "info":
		return cmdInfo(args, stdout, stderr)
	case "dump":
		return cmdDump(args, stdout, stderr)
	case "bounds":
		return cmdBounds(args, stdout, stderr)
	case "check":
		return cmdCheck(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objtool - OBJ mesh utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>              Show vertex, face and buffer counts
  dump [-n N] <file.obj>       Print resolved triangles (N = limit, 0 = all)
  bounds <file.obj>            Show the bounding box
  check [-j N] <file.obj>...   Parse files concurrently and report errors

Examples:
  objtool info assets/cow.obj
  objtool dump -n 4 assets/field.obj
  objtool check assets/*.obj`)
}

func cmdInfo(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: objtool info <file.obj>")
		return 1
	}

	obj, err := formats.ParseOBJFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	floats := obj.TriangleCount() * 9
	b := obj.Bounds()
	size := b.Size()

	fmt.Fprintf(stdout, "File:      %s\n", args[0])
	fmt.Fprintf(stdout, "Vertices:  %d\n", obj.VertexCount())
	fmt.Fprintf(stdout, "Faces:     %d\n", obj.TriangleCount())
	fmt.Fprintf(stdout, "Floats:    %d\n", floats)
	fmt.Fprintf(stdout, "Bytes:     %d\n", floats*4)
	fmt.Fprintf(stdout, "Size:      %g x %g x %g\n", size[0], size[1], size[2])
	return 0
}

func cmdDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 0, "Limit output to N triangles (0 = all)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: objtool dump [-n N] <file.obj>")
		return 1
	}

	tris, err := formats.LoadOBJFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	n := len(tris) / 9
	shown := n
	if *limit > 0 && *limit < n {
		shown = *limit
	}

	for i := 0; i < shown; i++ {
		t := tris[i*9 : i*9+9]
		fmt.Fprintf(stdout, "%6d  (%g, %g, %g)  (%g, %g, %g)  (%g, %g, %g)\n",
			i, t[0], t[1], t[2], t[3], t[4], t[5], t[6], t[7], t[8])
	}
	if shown < n {
		fmt.Fprintf(stdout, "... and %d more\n", n-shown)
	}
	return 0
}

func cmdBounds(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: objtool bounds <file.obj>")
		return 1
	}

	obj, err := formats.ParseOBJFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	b := obj.Bounds()
	c := b.Center()
	fmt.Fprintf(stdout, "Min:     (%g, %g, %g)\n", b.Min[0], b.Min[1], b.Min[2])
	fmt.Fprintf(stdout, "Max:     (%g, %g, %g)\n", b.Max[0], b.Max[1], b.Max[2])
	fmt.Fprintf(stdout, "Center:  (%g, %g, %g)\n", c[0], c[1], c[2])
	return 0
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("j", 0, "Parallel workers (0 = one per CPU)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "Usage: objtool check [-j N] <file.obj>...")
		return 1
	}

	faces := make([]int, len(files))
	errs := jobs.Run(*workers, len(files), func(i int) error {
		tris, err := formats.LoadOBJFile(files[i])
		if err != nil {
			return err
		}
		faces[i] = len(tris) / 9
		return nil
	})

	failed := 0
	for i, file := range files {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL  %s: %v\n", file, errs[i])
			continue
		}
		fmt.Fprintf(stdout, "ok    %s (%d faces)\n", file, faces[i])
	}

	fmt.Fprintf(stdout, "\n%d checked, %d failed\n", len(files), failed)
	if failed > 0 {
		return 1
	}
	return 0
}
