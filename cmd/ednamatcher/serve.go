package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RewanshChoudhary/OceanRepo/internal/server"
	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
)

var flagHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the species identification HTTP API",
	Long: `Builds the reference index from the configured corpus and serves the
identification API until interrupted. With corpus.watch enabled the
index is rebuilt automatically when the corpus files change.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "", "address and port for the REST API (e.g. :9091), overrides config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if flagHTTPAddr != "" {
		cfg.HTTPAddr = flagHTTPAddr
	}

	eng, err := engine.New(cfg.EngineOptions())
	if err != nil {
		log.Fatalf("%v", err)
	}

	srv, err := server.NewServer(eng, cfg)
	if err != nil {
		log.Fatalf("could not create server: %v", err)
	}
	if err := srv.ReloadCorpus(); err != nil {
		log.Fatalf("building reference index: %v", err)
	}

	// The watcher may rebuild concurrently from this point on; the HTTP
	// handlers always see either the old or the new index, never a
	// partial one.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownChan
	srv.Shutdown()
}
