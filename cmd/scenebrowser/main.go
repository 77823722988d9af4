// scenebrowser is a terminal scene browser: it imports a mesh file into
// the scene controller, lists the classified objects, and drives the
// selection protocol from the keyboard.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/flywave/go-simscene/render"
	"github.com/flywave/go-simscene/scene"
)

func main() {
	meshPath := flag.String("mesh", "", "mesh file to import at startup")
	logPath := flag.String("log", "", "log file, empty disables logging")
	flag.Parse()

	log := newLogger(*logPath)
	defer log.Sync()

	surface := render.NewOffscreen()
	controller := scene.NewController(surface, log)
	defer controller.Close()

	if *meshPath != "" {
		if err := controller.ImportMesh(*meshPath); err != nil {
			fmt.Fprintf(os.Stderr, "import %s: %v\n", *meshPath, err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(newModel(controller, surface), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "scenebrowser: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to a rotating file; stderr belongs to the TUI.
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    16,
			MaxBackups: 2,
			MaxAge:     7,
		}),
		zap.InfoLevel,
	)
	return zap.New(core)
}
