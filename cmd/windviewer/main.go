// windviewer serves an interactive wind flow view: two sliders position
// the streamline seed line, a websocket pushes retraced flow lines, and
// /tube.mst downloads the current tube mesh.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/flywave/go-simscene/streamline"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	listen := flag.String("listen", "", "listen address override")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	log := newLogger(cfg.Log)
	defer log.Sync()

	grid, err := cfg.BuildField()
	if err != nil {
		log.Fatal("stream field unavailable", zap.Error(err))
	}
	pipe, err := streamline.New(grid, cfg.TraceOptions(), nil, log)
	if err != nil {
		log.Fatal("pipeline construction failed", zap.Error(err))
	}
	if err := pipe.Update(streamline.DefaultStartX, streamline.DefaultStartY); err != nil {
		log.Fatal("initial trace failed", zap.Error(err))
	}

	srv := NewServer(pipe, log)
	log.Info("windviewer listening", zap.String("addr", cfg.Listen))
	if err := http.ListenAndServe(cfg.Listen, srv); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger writes JSON to the rotating file sink when one is configured
// and keeps a console copy on stderr either way.
func newLogger(cfg LogConfig) *zap.Logger {
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		zap.InfoLevel,
	)
	if cfg.File == "" {
		return zap.New(console)
	}
	file := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}),
		zap.InfoLevel,
	)
	return zap.New(zapcore.NewTee(file, console))
}
