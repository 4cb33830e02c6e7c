// Package main provides micview, a viewer for microphone-array
// configurations. It loads a JSON mic config (from a local file or an
// s3://bucket/key reference) and serves it through a small web interface,
// and can pretty-print or plot audio data sets from the command line.
//
// Usage:
//
//	micview -config mic_cfg.json [-listen :8080]
//	micview -audio capture.json -print
//	micview -audio capture.json -plot out.png [-rate 16000]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/soundfield/micview/internal/audiodat"
	"github.com/soundfield/micview/internal/mic"
	"github.com/soundfield/micview/internal/micsource"
	"github.com/soundfield/micview/internal/util"
)

// Build information, set via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	configRef := flag.String("config", "", "Path or s3://bucket/key ref of the mic array config")
	listenAddr := flag.String("listen", ":8080", "HTTP listen address for the viewer")
	audioPath := flag.String("audio", "", "Path to an audio data JSON file")
	printDat := flag.Bool("print", false, "Pretty-print the audio data file and exit")
	summary := flag.Bool("summary", false, "Print a per-channel digest of the audio data file and exit")
	plotPath := flag.String("plot", "", "Render the audio data file to this PNG and exit")
	rate := flag.Float64("rate", 0, "Sample rate for plotting (overrides the audio file's fS)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		slog.Info("version info", "version", Version, "commit", Commit, "build_time", BuildTime)
		return
	}

	if *printDat || *summary || *plotPath != "" {
		runDisplay(*audioPath, *printDat, *summary, *plotPath, *rate)
		return
	}

	if *configRef == "" {
		slog.Error("missing -config")
		flag.Usage()
		os.Exit(2)
	}

	data, err := micsource.Read(context.Background(), *configRef, s3OptionsFromEnv())
	if err != nil {
		slog.Error("failed to load mic config", "ref", *configRef, "error", err)
		os.Exit(1)
	}

	array, err := mic.Parse(data)
	if err != nil {
		slog.Error("failed to parse mic config", "ref", *configRef, "error", err)
		os.Exit(1)
	}
	slog.Info("mic array loaded", "ref", *configRef, "channels", array.Channels())

	if err := array.ValidateStrict(); err != nil {
		slog.Warn("mic config has out-of-range values", "error", err)
	}

	srv := NewServer(array)
	httpServer := srv.Start(*listenAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, util.ShutdownSignals()...)
	<-sigChan

	slog.Info("shutting down")

	srv.version.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// runDisplay handles the -print, -summary, and -plot command-line modes.
func runDisplay(audioPath string, printDat, summary bool, plotPath string, rate float64) {
	if audioPath == "" {
		slog.Error("-print, -summary, and -plot require -audio")
		os.Exit(2)
	}

	dat, fileRate, err := audiodat.LoadFile(audioPath)
	if err != nil {
		slog.Error("failed to load audio data", "path", audioPath, "error", err)
		os.Exit(1)
	}

	if printDat {
		if err := audiodat.PPrint(os.Stdout, dat); err != nil {
			slog.Error("failed to print audio data", "error", err)
			os.Exit(1)
		}
	}

	if summary {
		audiodat.Summary(os.Stdout, dat)
	}

	if plotPath != "" {
		if rate == 0 {
			rate = fileRate
		}
		if err := audiodat.PlotFile(plotPath, dat, rate); err != nil {
			slog.Error("failed to plot audio data", "error", err)
			os.Exit(1)
		}
		slog.Info("plot written", "path", plotPath)
	}
}

// s3OptionsFromEnv reads object-store credentials for s3:// config refs.
func s3OptionsFromEnv() micsource.S3Options {
	return micsource.S3Options{
		Endpoint:        os.Getenv("MICVIEW_S3_ENDPOINT"),
		Region:          os.Getenv("MICVIEW_S3_REGION"),
		AccessKeyID:     os.Getenv("MICVIEW_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("MICVIEW_S3_SECRET_ACCESS_KEY"),
	}
}
