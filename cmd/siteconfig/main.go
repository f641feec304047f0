// FILE: lixenwraith/siteconfig/cmd/siteconfig/main.go

// siteconfig resolves an INI or XML site configuration and prints it.
//
// Without --section the whole configuration is written in --format. With
// --section only that section is printed, and with --key a single value.
// --watch keeps running and re-prints the configuration whenever the file
// changes.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/natefinch/lumberjack"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/siteconfig"
)

type options struct {
	file       string
	script     string
	section    string
	key        string
	format     string
	output     string
	unresolved string
	logFile    string
	verbose    bool
	watch      bool
	debug      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("siteconfig", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.file, "file", "f", "", "configuration file (.ini or .xml)")
	flagSet.StringVar(&opts.script, "script", os.Getenv(siteconfig.ScriptPathEnv), "request script path used for {_APPURL_}")
	flagSet.StringVarP(&opts.section, "section", "s", "", "print only this section")
	flagSet.StringVarP(&opts.key, "key", "k", "", "print only this key (requires --section)")
	flagSet.StringVar(&opts.format, "format", "toml", "output format: toml, yaml, json, env")
	flagSet.StringVarP(&opts.output, "output", "o", "", "write the printed output to this file instead of stdout")
	flagSet.StringVar(&opts.unresolved, "unresolved", "keep", "unresolved reference policy: keep, empty, error")
	flagSet.StringVar(&opts.logFile, "log-file", "", "also write JSON log records to this file (rotated)")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug events")
	flagSet.BoolVar(&opts.watch, "watch", false, "re-print the configuration when the file changes")
	flagSet.BoolVar(&opts.debug, "debug", false, "print the debug listing instead of an export")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.file == "" && flagSet.NArg() > 0 {
		opts.file = flagSet.Arg(0)
	}
	if opts.file == "" {
		return fmt.Errorf("no configuration file given (use --file)")
	}
	if opts.key != "" && opts.section == "" {
		return fmt.Errorf("--key requires --section")
	}
	if opts.watch && opts.output != "" {
		return fmt.Errorf("--output cannot be combined with --watch")
	}

	policy, err := siteconfig.ParseUnresolvedPolicy(opts.unresolved)
	if err != nil {
		return err
	}
	format, err := siteconfig.ParseExportFormat(opts.format)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.verbose, opts.logFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	load := siteconfig.LoadOptions{
		ScriptPath: opts.script,
		Unresolved: policy,
		Logger:     logger,
	}

	if opts.watch {
		return watch(opts, format, load, stdout, logger)
	}

	cfg, err := siteconfig.NewBuilder().
		WithFile(opts.file).
		WithScriptPath(load.ScriptPath).
		WithUnresolvedPolicy(load.Unresolved).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}
	return emit(cfg, opts, format, stdout)
}

// emit prints the requested part of cfg to --output, or stdout when unset
func emit(cfg *siteconfig.Config, opts options, format siteconfig.ExportFormat, stdout io.Writer) error {
	if opts.output != "" && !opts.debug && opts.section == "" {
		return cfg.Save(opts.output, format)
	}

	var buf bytes.Buffer
	if err := render(cfg, opts, format, &buf); err != nil {
		return err
	}
	if opts.output != "" {
		return os.WriteFile(opts.output, buf.Bytes(), 0644)
	}
	_, err := stdout.Write(buf.Bytes())
	return err
}

// render writes the debug listing, a value, a section or a full export to w
func render(cfg *siteconfig.Config, opts options, format siteconfig.ExportFormat, w io.Writer) error {
	if opts.debug {
		_, err := io.WriteString(w, cfg.Debug())
		return err
	}

	if opts.section == "" {
		return cfg.Dump(w, format)
	}

	if opts.key != "" {
		v, err := cfg.Value(opts.section, opts.key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, v)
		return err
	}

	doc, err := cfg.Document()
	if err != nil {
		return err
	}
	sec, ok := doc.Lookup(opts.section)
	if !ok {
		return fmt.Errorf("%w: %q", siteconfig.ErrUnknownSection, opts.section)
	}
	for _, p := range sec.Pairs {
		if _, err := fmt.Fprintf(w, "%s = %s\n", p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// watch prints the configuration and again after every reload until interrupted
func watch(opts options, format siteconfig.ExportFormat, load siteconfig.LoadOptions, stdout io.Writer, logger *zap.Logger) error {
	w, err := siteconfig.Watch(opts.file, siteconfig.DefaultWatchOptions(), load)
	if err != nil {
		return err
	}
	defer w.Stop()

	events := w.Subscribe()
	if err := emit(w.Current(), opts, format, stdout); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event != siteconfig.EventReloaded {
				logger.Warn("watch event", zap.String("event", event))
				continue
			}
			if err := emit(w.Current(), opts, format, stdout); err != nil {
				logger.Error("print failed", zap.Error(err))
			}
		}
	}
}

// newLogger writes console records to stderr and, when logFile is set, JSON
// records to a lumberjack-rotated file.
func newLogger(verbose bool, logFile string) (*zap.Logger, error) {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	if logFile != "" {
		fileSink := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(fileSink),
			zap.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
