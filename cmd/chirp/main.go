// Command chirp is the Chirp synthesis language CLI.
package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/evaluator"
	"github.com/chirplang/chirp/pkg/formatter"
	"github.com/chirplang/chirp/pkg/parser"
	"github.com/chirplang/chirp/pkg/profile"
	"github.com/chirplang/chirp/pkg/renderer"
	"github.com/chirplang/chirp/pkg/runtime"
	"github.com/chirplang/chirp/pkg/validator"
	"github.com/chirplang/chirp/pkg/wav"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: chirp <command> [options]")
		fmt.Fprintln(os.Stderr, "commands: render, stream, check, fmt")
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "render":
		os.Exit(cmdRender(os.Args[2:]))
	case "stream":
		os.Exit(cmdStream(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

// renderFlags are the settings shared by render and stream, merged from
// an optional profile file and command-line flags. Flags win.
type renderFlags struct {
	file     string
	out      string
	length   float64
	rate     int
	workers  int
	maxDepth int
	chunk    int
	realtime bool
	pretty   bool
}

func parseRenderFlags(args []string, usage string) (*renderFlags, int) {
	f := &renderFlags{}
	profilePath := ""
	var err error

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--pretty":
			f.pretty = true
		case "--realtime":
			f.realtime = true
		case "--out", "-o":
			if i+1 < len(args) {
				i++
				f.out = args[i]
			}
		case "--profile":
			if i+1 < len(args) {
				i++
				profilePath = args[i]
			}
		case "--length", "-l":
			if i+1 < len(args) {
				i++
				if f.length, err = strconv.ParseFloat(args[i], 64); err != nil {
					fmt.Fprintf(os.Stderr, "invalid --length: %s\n", args[i])
					return nil, 1
				}
			}
		case "--rate", "-r":
			if i+1 < len(args) {
				i++
				if f.rate, err = strconv.Atoi(args[i]); err != nil {
					fmt.Fprintf(os.Stderr, "invalid --rate: %s\n", args[i])
					return nil, 1
				}
			}
		case "--workers":
			if i+1 < len(args) {
				i++
				if f.workers, err = strconv.Atoi(args[i]); err != nil {
					fmt.Fprintf(os.Stderr, "invalid --workers: %s\n", args[i])
					return nil, 1
				}
			}
		case "--max-depth":
			if i+1 < len(args) {
				i++
				if f.maxDepth, err = strconv.Atoi(args[i]); err != nil {
					fmt.Fprintf(os.Stderr, "invalid --max-depth: %s\n", args[i])
					return nil, 1
				}
			}
		case "--chunk":
			if i+1 < len(args) {
				i++
				if f.chunk, err = strconv.Atoi(args[i]); err != nil {
					fmt.Fprintf(os.Stderr, "invalid --chunk: %s\n", args[i])
					return nil, 1
				}
			}
		default:
			// First positional is the script, second the output path.
			if !strings.HasPrefix(args[i], "-") || args[i] == "-" {
				if f.file == "" {
					f.file = args[i]
				} else if f.out == "" {
					f.out = args[i]
				}
			}
		}
	}

	if f.file == "" {
		fmt.Fprintln(os.Stderr, usage)
		return nil, 1
	}

	if profilePath != "" {
		p, perr := profile.LoadFile(profilePath)
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr.Error())
			return nil, 1
		}
		if f.rate == 0 {
			f.rate = p.SampleRate
		}
		if f.length == 0 {
			f.length = p.Duration
		}
		if f.workers == 0 {
			f.workers = p.Workers
		}
		if f.maxDepth == 0 {
			f.maxDepth = p.MaxDepth
		}
		if f.chunk == 0 {
			f.chunk = p.ChunkSize
		}
		if f.out == "" {
			f.out = p.Output
		}
		f.realtime = f.realtime || p.Realtime
	}
	return f, 0
}

func cmdRender(args []string) int {
	f, code := parseRenderFlags(args, "usage: chirp render <file> [--out <wav>] [--length <secs>] [--rate <hz>] [--workers <n>] [--profile <yaml>] [--pretty]")
	if code != 0 {
		return code
	}
	if f.length <= 0 {
		f.length = 1
	}

	script, loadCode := loadScript(f)
	if loadCode != 0 {
		return loadCode
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if f.rate <= 0 {
		f.rate = renderer.DefaultSampleRate
	}
	cfg := renderer.Config{
		SampleRate: f.rate,
		Duration:   f.length,
		Workers:    f.workers,
	}
	samples, err := script.Render(ctx, cfg)
	if err != nil {
		return reportRuntimeError(err, f.pretty)
	}

	out := os.Stdout
	if f.out != "" && f.out != "-" {
		file, ferr := os.Create(f.out)
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", f.out, ferr)
			return 1
		}
		defer file.Close()
		out = file
	}
	if err := wav.Encode(out, samples, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		return 1
	}
	return 0
}

func cmdStream(args []string) int {
	f, code := parseRenderFlags(args, "usage: chirp stream <file> [--length <secs>] [--rate <hz>] [--chunk <frames>] [--realtime] [--profile <yaml>]")
	if code != 0 {
		return code
	}

	script, loadCode := loadScript(f)
	if loadCode != 0 {
		return loadCode
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := renderer.StreamConfig{
		Config: renderer.Config{
			SampleRate: f.rate,
			Duration:   f.length,
		},
		ChunkSize: f.chunk,
		Realtime:  f.realtime,
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	buf := make([]byte, 0, 2*renderer.DefaultChunkSize)
	err := script.Stream(ctx, cfg, func(chunk []float64) error {
		buf = buf[:0]
		for _, s := range chunk {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(wav.Quantize(s)))
		}
		_, werr := w.Write(buf)
		return werr
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return reportRuntimeError(err, f.pretty)
	}
	return 0
}

func cmdCheck(args []string) int {
	var file string
	pretty := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--pretty":
			pretty = true
		default:
			if !strings.HasPrefix(args[i], "-") {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: chirp check <file> [--pretty]")
		return 1
	}

	source, exitCode := readSource(file)
	if exitCode != 0 {
		return exitCode
	}

	prog, diags := parser.Parse(source, file)
	if len(diags) == 0 {
		diags = validator.Validate(prog)
	}
	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, pretty))
		return 2
	}

	if pretty {
		fmt.Println("No errors found.")
	} else {
		fmt.Println("[]")
	}
	return 0
}

func cmdFmt(args []string) int {
	var file string
	write := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--write":
			write = true
		default:
			if !strings.HasPrefix(args[i], "-") {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: chirp fmt <file> [--write]")
		return 1
	}

	source, exitCode := readSource(file)
	if exitCode != 0 {
		return exitCode
	}

	prog, diags := parser.Parse(source, file)
	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, false))
		return 2
	}
	formatted := formatter.Format(prog)

	if formatter.HasComments(source) {
		fmt.Fprintln(os.Stderr, "warning: comments are not preserved by the formatter")
	}

	if write {
		if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file: %s\n", err)
			return 1
		}
	} else {
		fmt.Print(formatted)
	}
	return 0
}

func loadScript(f *renderFlags) (*runtime.Script, int) {
	source, exitCode := readSource(f.file)
	if exitCode != 0 {
		return nil, exitCode
	}
	var opts []runtime.Option
	if f.maxDepth > 0 {
		opts = append(opts, runtime.WithMaxDepth(f.maxDepth))
	}
	if f.workers > 0 {
		opts = append(opts, runtime.WithWorkers(f.workers))
	}
	script, err := runtime.Load(source, f.file, opts...)
	if err != nil {
		if diagErr, ok := err.(*runtime.DiagnosticError); ok {
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diagErr.Diags, f.pretty))
			return nil, 2
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return nil, 2
	}
	return script, 0
}

func reportRuntimeError(err error, pretty bool) int {
	var sampleErr *renderer.SampleError
	if errors.As(err, &sampleErr) {
		fmt.Fprintf(os.Stderr, "error at sample %d (t=%g):\n", sampleErr.Index, sampleErr.Time)
		err = sampleErr.Err
	}
	var rtErr *evaluator.RuntimeError
	if errors.As(err, &rtErr) {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(rtErr.Diag(), pretty))
		return 3
	}
	fmt.Fprintln(os.Stderr, err.Error())
	return 3
}

func readSource(file string) (string, int) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, false))
		return "", 1
	}
	return string(data), 0
}
