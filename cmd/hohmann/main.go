package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ChristopherRabotin/hohmann"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Runs a Hohmann transfer and exports every step, or hosts the engine over HTTP.

var (
	configPath string
	steps      int
	startAt    int
	outDir     string
	serve      string
	verbose    bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "TOML configuration file (defaults to $"+hohmann.ConfigEnv+")")
	flag.IntVar(&steps, "steps", 2000, "number of steps to run in batch mode")
	flag.IntVar(&startAt, "start-at", 100, "step at which the transfer is started, negative to never start it")
	flag.StringVar(&outDir, "out", ".", "output directory of the CSV export")
	flag.StringVar(&serve, "serve", "", "listen address, e.g. :8080, to host the engine over HTTP instead")
	flag.BoolVar(&verbose, "verbose", false, "log every phase transition")
}

func main() {
	flag.Parse()
	conf, err := hohmann.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("configuration: %s", err)
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if !verbose {
		logger = dropDebug{logger}
	}

	reg := prometheus.NewRegistry()
	engine, err := hohmann.NewEngine(conf, hohmann.WithLogger(logger), hohmann.WithMetrics(hohmann.NewMetrics(reg)))
	if err != nil {
		log.Fatalf("engine: %s", err)
	}

	if serve != "" {
		logger.Log("level", "info", "subsys", "http", "listen", serve)
		srv := &http.Server{Addr: serve, Handler: newHandler(engine, reg, logger), ReadHeaderTimeout: 5 * time.Second}
		log.Fatal(srv.ListenAndServe())
	}

	if err := run(engine, logger); err != nil {
		log.Fatal(err)
	}
}

// run ticks the engine in batch mode and streams every sample to the CSV export.
func run(engine *hohmann.Engine, logger kitlog.Logger) error {
	conf := engine.Config().Export
	f, err := conf.Create(outDir)
	if err != nil {
		return err
	}
	defer f.Close()

	sampleChan := make(chan hohmann.Sample, 100)
	var wg sync.WaitGroup
	var exportErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		exportErr = hohmann.StreamSamples(f, conf, sampleChan)
	}()

	var tickErr error
	for i := 0; i < steps; i++ {
		if i == startAt {
			if err := engine.StartTransfer(); err != nil {
				logger.Log("level", "warning", "subsys", "cmd", "err", err)
			}
		}
		sample, err := engine.Tick()
		if err != nil {
			tickErr = err
			break
		}
		sampleChan <- sample
	}
	close(sampleChan)
	wg.Wait()
	if tickErr != nil {
		return tickErr
	}
	if exportErr != nil {
		return exportErr
	}
	logger.Log("level", "notice", "subsys", "cmd", "file", f.Name(), "steps", steps, "radius(AU)", engine.Radius()/hohmann.AU)
	return nil
}

// dropDebug filters out debug level records.
type dropDebug struct {
	next kitlog.Logger
}

func (d dropDebug) Log(keyvals ...interface{}) error {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] == "level" && keyvals[i+1] == "debug" {
			return nil
		}
	}
	return d.next.Log(keyvals...)
}
