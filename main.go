package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/NeXX451/Mandelbrot/explorer"
	"github.com/NeXX451/Mandelbrot/misc"
	"github.com/NeXX451/Mandelbrot/remote"
	"github.com/NeXX451/Mandelbrot/server"
)

func main() {
	parseArguments()

	logger := bslogger.NewLogger("Mandelbrot", bslogger.Normal, nil)

	switch mode {
	case modeRender:
		settings, err := newRenderSettings(settingsFile)
		misc.CheckError(err, logger, misc.Fatal)
		misc.CheckError(renderToFile(settings, logger), logger, misc.Fatal)

	case modeServe:
		startServer(logger)

	case modeRemote:
		settings, err := remote.NewSettings(settingsFile)
		misc.CheckError(err, logger, misc.Fatal)
		misc.CheckError(remote.RenderToFile(settings), logger, misc.Fatal)

	case modeExplore:
		startExplorer(logger)
	}
}

func startServer(logger bslogger.Logger) {
	settings, err := server.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)

	renderServer, err := server.NewServer(settings)
	misc.CheckError(err, logger, misc.Fatal)
	misc.CheckError(renderServer.Run(), logger, misc.Fatal)
	logger.Infof("Serving renders at %s", renderServer.Address())

	// Serve until interrupted
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals
	misc.CheckError(renderServer.Stop(), logger, misc.Warning)
}

func startExplorer(logger bslogger.Logger) {
	settings, err := explorer.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)

	var backend explorer.Backend = explorer.NewLocalBackend(settings.Workers)
	if settings.ServerAddress != "" {
		client := remote.NewClient(settings.ServerAddress)
		misc.CheckError(client.Connect(), logger, misc.Fatal)
		defer func() {
			misc.CheckError(client.Disconnect(), logger, misc.Warning)
		}()
		backend = client
	}

	terminal, err := explorer.NewExplorer(settings, backend)
	misc.CheckError(err, logger, misc.Fatal)
	terminal.Run()
}
