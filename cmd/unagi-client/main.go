package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/docker/go-units"
	"github.com/namsral/flag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/msiebuhr/unagi"
	"github.com/msiebuhr/unagi/customflags"
)

var (
	host        string
	timeout     time.Duration
	verbose     bool
	metricsFile string
	alphabet    = customflags.NewAlphabet(unagi.Letters)
)

func init() {
	// Every flag can also be set as UNAGI_<NAME>, e.g. UNAGI_HOST
	flag.CommandLine = flag.NewFlagSetWithEnvPrefix(os.Args[0], "UNAGI", flag.ExitOnError)

	flag.StringVar(&host, "host", "localhost", "Server host")
	flag.DurationVar(&timeout, "timeout", 0, "Give up on the server after this long (0 waits forever)")
	flag.BoolVar(&verbose, "verbose", false, "Log connection details to stderr")
	flag.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	flag.Var(alphabet, "alphabet", "Characters for generated data, or one of: letters, lower, ab, digits")
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	flag.Usage = func() {
		unagi.Usage(os.Stdout, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		return
	}

	logger := newLogger()
	defer logger.Sync()

	port, err := strconv.Atoi(args[0])
	if err != nil {
		logger.Error("Invalid port", zap.String("port", args[0]), zap.Error(err))
		os.Exit(2)
	}

	cmd, err := unagi.ParseCommand(args[1], args[2:], string(*alphabet))
	var unknown *unagi.UnknownCommandError
	if errors.As(err, &unknown) {
		logger.Error("Unknown command", zap.String("command", unknown.Name))
		unagi.Usage(os.Stderr, filepath.Base(os.Args[0]))
		os.Exit(2)
	} else if err != nil {
		logger.Error("Bad arguments", zap.Error(err))
		os.Exit(2)
	}

	client := unagi.NewClient(
		net.JoinHostPort(host, strconv.Itoa(port)),
		func(c *unagi.Client) {
			c.Timeout = timeout
			c.Log = logger
		},
	)

	if mc, ok := cmd.(unagi.MakeRandomCommand); ok {
		logger.Debug("Staging message",
			zap.String("file", mc.Filename),
			zap.String("size", units.HumanSize(float64(len(mc.Request().Bytes())))),
		)
	}

	t0 := time.Now()
	err = cmd.Run(context.Background(), client)
	t1 := time.Now()

	if metricsFile != "" {
		if merr := unagi.WriteMetrics(metricsFile); merr != nil {
			logger.Warn("Could not write metrics", zap.String("file", metricsFile), zap.Error(merr))
		}
	}

	if err != nil {
		logger.Error("Command failed", zap.String("command", cmd.Name()), zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("command took %.9f sec\n", t1.Sub(t0).Seconds())
}
