package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	senml "github.com/reoring/senml"
	"github.com/reoring/senml/i18n"
	"github.com/reoring/senml/internal/config"
	"github.com/reoring/senml/internal/logging"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "senml CLI\n\nUsage:\n  senml validate  [-config file] [-f input] [-all]\n  senml normalize [-config file] [-f input] [-o output]\n  senml encode    [-config file] [-f input] [-o output] [-format json|xml|cbor]\n\nInput defaults to stdin and output to stdout. Settings can be overridden with SENML_* variables.")
}

// env is what every subcommand needs once flags and config are resolved.
type env struct {
	log    *zap.Logger
	cfg    config.Config
	in     []byte
	out    io.Writer
	output string // file path; empty means out
}

type common struct {
	configPath string
	input      string
	output     string
}

func (c *common) register(fs *flag.FlagSet, withOutput bool) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.input, "f", "", "input file (default stdin)")
	if withOutput {
		fs.StringVar(&c.output, "o", "", "output file (default stdout)")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		usage(os.Stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdin, stdout)
	case "normalize":
		return normalizeCmd(args[1:], stdin, stdout)
	case "encode":
		return encodeCmd(args[1:], stdin, stdout)
	default:
		usage(os.Stderr)
		return exitUsage
	}
}

func validateCmd(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	var c common
	var all bool
	c.register(fs, false)
	fs.BoolVar(&all, "all", false, "report every invalid record instead of the first")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	e, code := setup(c, stdin, stdout)
	if e == nil {
		return code
	}
	defer e.log.Sync() //nolint:errcheck

	opt := decodeOpt(e.cfg)
	if !all {
		p, err := senml.DecodeWith(e.in, senml.JSON, opt)
		if err != nil {
			logIssue(e.log, "invalid pack", err)
			return exitFail
		}
		e.log.Info("pack valid", zap.Int("records", len(p.Records)))
		fmt.Fprintln(e.out, "ok")
		return exitOK
	}

	p, err := senml.Parse(e.in, senml.JSON, opt)
	if err != nil {
		logIssue(e.log, "unreadable pack", err)
		return exitFail
	}
	iss := senml.ValidateAll(&p)
	for _, it := range iss {
		fmt.Fprintf(e.out, "%s\t%s\t%s\n", it.Path, it.Code, it.Message)
	}
	if len(iss) > 0 {
		e.log.Error("invalid pack", zap.Int("records", len(p.Records)), zap.Int("issues", len(iss)))
		return exitFail
	}
	e.log.Info("pack valid", zap.Int("records", len(p.Records)))
	fmt.Fprintln(e.out, "ok")
	return exitOK
}

func normalizeCmd(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	var c common
	c.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	e, code := setup(c, stdin, stdout)
	if e == nil {
		return code
	}
	defer e.log.Sync() //nolint:errcheck

	p, err := senml.DecodeWith(e.in, senml.JSON, decodeOpt(e.cfg))
	if err != nil {
		logIssue(e.log, "decode failed", err)
		return exitFail
	}
	n, err := senml.Normalize(p)
	if err != nil {
		logIssue(e.log, "normalize failed", err)
		return exitFail
	}
	return e.write(n, senml.JSON)
}

func encodeCmd(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	var c common
	var formatName string
	c.register(fs, true)
	fs.StringVar(&formatName, "format", "json", "output format: json, xml or cbor")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	format, err := senml.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v: %s\n", err, formatName)
		return exitUsage
	}
	e, code := setup(c, stdin, stdout)
	if e == nil {
		return code
	}
	defer e.log.Sync() //nolint:errcheck

	p, err := senml.DecodeWith(e.in, senml.JSON, decodeOpt(e.cfg))
	if err != nil {
		logIssue(e.log, "decode failed", err)
		return exitFail
	}
	return e.write(p, format)
}

// setup loads config, builds the logger and reads the input. A nil env means
// the command must exit with the returned code.
func setup(c common, stdin io.Reader, stdout io.Writer) (*env, int) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return nil, exitUsage
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return nil, exitFail
	}
	i18n.SetLanguage(cfg.Language)

	in, err := readInput(c.input, stdin)
	if err != nil {
		log.Error("read input", zap.String("file", c.input), zap.Error(err))
		return nil, exitFail
	}
	log.Debug("input loaded", zap.String("file", c.input), zap.Int("bytes", len(in)))

	return &env{log: log, cfg: cfg, in: in, out: stdout, output: c.output}, exitOK
}

// write encodes p and emits it. A file output is only replaced once the
// encoded bytes are complete, so a failed run leaves the old file intact.
func (e *env) write(p senml.Pack, f senml.Format) int {
	b, err := senml.Encode(p, f)
	if err != nil {
		logIssue(e.log, "encode failed", err, zap.Stringer("format", f))
		return exitFail
	}
	b = append(b, '\n')
	if e.output == "" {
		_, err = e.out.Write(b)
	} else {
		err = replaceFile(e.output, b)
	}
	if err != nil {
		e.log.Error("write output", zap.String("file", e.output), zap.Error(err))
		return exitFail
	}
	e.log.Info("pack written", zap.Int("records", len(p.Records)), zap.Stringer("format", f))
	return exitOK
}

// replaceFile writes b to a temp file next to path and renames it over path.
func replaceFile(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decodeOpt(cfg config.Config) senml.DecodeOpt {
	return senml.DecodeOpt{StrictKeys: cfg.Decode.StrictKeys, MaxBytes: cfg.Decode.MaxBytes}
}

func logIssue(log *zap.Logger, msg string, err error, extra ...zap.Field) {
	fields := append([]zap.Field{zap.Error(err)}, extra...)
	var iss senml.Issue
	if errors.As(err, &iss) {
		fields = append(fields,
			zap.String("code", iss.Code),
			zap.String("path", iss.Path),
			zap.Int("index", iss.Index),
		)
	}
	log.Error(msg, fields...)
}
