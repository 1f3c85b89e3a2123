package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/namsral/flag"
	"github.com/pinterest/bender"
	"github.com/pinterest/bender/hist"
	"go.uber.org/zap"

	"github.com/msiebuhr/unagi"
	"github.com/msiebuhr/unagi/customflags"
	"github.com/msiebuhr/unagi/workload"
)

// Executes one generated request against the server
func RequestExecutor(client *unagi.Client, timeout time.Duration) bender.RequestExecutor {
	return func(unix_nsec int64, transport interface{}) (interface{}, error) {
		req, ok := transport.(*unagi.Request)
		if !ok {
			return nil, errors.New("Transport was not *unagi.Request")
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		return nil, client.Do(ctx, req)
	}
}

var (
	address      string
	profilePath  string
	requestCount int
	workerCount  int
	verbose      bool
	metricsFile  string
	size         = customflags.NewSize(0)
)

func init() {
	flag.CommandLine = flag.NewFlagSetWithEnvPrefix(os.Args[0], "UNAGI", flag.ExitOnError)

	flag.StringVar(&address, "address", "localhost:8126", "Server address")
	flag.StringVar(&profilePath, "profile", "", "YAML workload profile (defaults if empty)")
	flag.IntVar(&requestCount, "requests", 100, "Total number of requests")
	flag.IntVar(&workerCount, "workers", 10, "Worker number")
	flag.BoolVar(&verbose, "verbose", false, "Spew more info")
	flag.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	flag.Var(size, "size", "Document size, overrides the profile")
}

func main() {
	flag.Parse()

	profile := workload.DefaultProfile()
	if profilePath != "" {
		p, err := workload.LoadProfile(profilePath)
		if err != nil {
			log.Fatalf("Could not load profile: %s", err)
		}
		profile = *p
	}
	if size.Int64() > 0 {
		profile.DocSize = *size
		if err := profile.Validate(); err != nil {
			log.Fatalf("Invalid -size: %s", err)
		}
	}

	log.Println(
		"Starting",
		"Requests=", requestCount,
		"Workers=", workerCount,
		"DocSize=", profile.DocSize,
		"QuerySize=", profile.QuerySize,
		"PutRatio=", profile.PutRatio,
	)
	log.Println(
		"Est. total upload=", units.BytesSize(float64(requestCount)*profile.PutRatio*float64(profile.DocSize.Int64())),
	)

	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	client := unagi.NewClient(address, func(c *unagi.Client) {
		c.Output = ioutil.Discard
		c.Log = logger
	})

	requests := workload.Generate(profile, requestCount)
	exec := RequestExecutor(client, profile.Timeout.Duration)
	recorder := make(chan interface{}, requestCount)

	// Set up semaphore for parallel workers
	ws := bender.NewWorkerSemaphore()
	go func() { ws.Signal(workerCount) }()

	bender.LoadTestConcurrency(ws, requests, exec, recorder)

	l := log.New(ioutil.Discard, "", log.LstdFlags)
	if verbose {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	h := hist.NewHistogram(60000, int(time.Millisecond))
	bender.Record(recorder, bender.NewLoggingRecorder(l), bender.NewHistogramRecorder(h))
	fmt.Println(h)

	if metricsFile != "" {
		if err := unagi.WriteMetrics(metricsFile); err != nil {
			log.Printf("Could not write metrics: %s", err)
		}
	}
}
