// Command latencyd serves the latency telemetry API.
package main

import (
	"flag"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/probeops/latencyprobe/config"
	"github.com/probeops/latencyprobe/server"
	"github.com/probeops/latencyprobe/telemetry"
)

var (
	configFile = flag.String("config", "", "Path to the config file")
	debug      = flag.Bool("debug", false, "Enable debug mode")
)

func main() {
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.Debug || *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// serve the embedded sample dataset unless a dataset file
	// is configured.
	data := telemetry.Default()
	if cfg.DatasetPath != "" {
		data, err = telemetry.ParseFile(cfg.DatasetPath)
		if err != nil {
			log.Fatalf("Could not load dataset: %v", err)
		}
	}
	log.Infof("Loaded %s", data)

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: server.New(data, log),
	}

	log.Infoln("Starting server on " + cfg.ListenAddress)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
