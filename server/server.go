package server

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
	"github.com/NeXX451/Mandelbrot/rpc"
)

var ErrTooLarge = errors.New("requested image is larger than the server allows")

// RenderRequest describes one image for the server to draw. A SuperSampling below 2 renders one sample per pixel.
type RenderRequest struct {
	Bounds        mandelbrot.Bounds
	Colors        mandelbrot.ColorSettings
	Height        int
	SuperSampling int
	Width         int
}

// RenderReply carries the finished pixels row by row, four bytes (rgba) per pixel.
type RenderReply struct {
	Height        int
	MaxIterations int
	Pix           []uint8
	Step          float64
	Stride        int
	Width         int
}

// RenderService is the object registered with the rpc server. Only its rpc methods are exported.
type RenderService struct {
	logger   bslogger.Logger
	mutex    sync.Mutex
	rendered uint
	settings Settings
}

func (rs *RenderService) Render(request RenderRequest, reply *RenderReply) error {
	if request.Width > rs.settings.MaxWidth || request.Height > rs.settings.MaxHeight {
		return fmt.Errorf("%w: %dx%d, limit %dx%d", ErrTooLarge, request.Width, request.Height, rs.settings.MaxWidth, rs.settings.MaxHeight)
	}
	if request.SuperSampling > rs.settings.MaxSuperSampling {
		return fmt.Errorf("%w: super sampling %d, limit %d", ErrTooLarge, request.SuperSampling, rs.settings.MaxSuperSampling)
	}

	viewport, err := mandelbrot.NewViewport(request.Bounds.ReStart, request.Bounds.ImStart, request.Bounds.ReEnd, request.Width, request.Height)
	if err != nil {
		rs.logger.Warningf("Rejected render request: %s", err)
		return err
	}
	renderer, err := mandelbrot.NewRenderer(mandelbrot.Settings{
		Height:        request.Height,
		SuperSampling: request.SuperSampling,
		Width:         request.Width,
		Workers:       rs.settings.Workers,
	})
	if err != nil {
		return err
	}

	frame, err := renderer.Render(viewport, request.Colors)
	if err != nil {
		rs.logger.Warningf("Render failed: %s", err)
		return err
	}

	*reply = RenderReply{
		Height:        request.Height,
		MaxIterations: frame.MaxIterations,
		Pix:           frame.Image.Pix,
		Step:          viewport.Step(),
		Stride:        frame.Image.Stride,
		Width:         request.Width,
	}

	rs.mutex.Lock()
	rs.rendered++
	rs.mutex.Unlock()
	rs.logger.Infof("Rendered %s", viewport.String())
	return nil
}

func (rs *RenderService) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

func (rs *RenderService) renderedCount() uint {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	return rs.rendered
}

// Server renders images for remote clients.
type Server struct {
	logFile  *os.File
	logger   bslogger.Logger
	service  *RenderService
	settings Settings
	stop     chan bool
	stopOnce sync.Once

	TcpServer *rpc.TcpServer
}

func NewServer(settings Settings) (*Server, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	server := &Server{
		logger:   bslogger.NewLogger("Server", bslogger.Normal, nil),
		settings: settings,
		stop:     make(chan bool),
	}

	// Record the run in a log file when asked to
	if settings.LogFile != "" {
		logFile, err := os.Create(settings.LogFile)
		if err != nil {
			return nil, fmt.Errorf("unable to create log file %s - %w", settings.LogFile, err)
		}
		server.logFile = logFile
		server.logger = bslogger.NewLogger("Server", bslogger.Normal, logFile)
	}

	server.service = &RenderService{
		logger:   server.logger,
		settings: settings,
	}
	server.TcpServer = rpc.NewTcpServer(server.service, settings.ServerAddress, "RenderServer")
	return server, nil
}

func (s *Server) Run() error {
	if err := s.TcpServer.Run(); err != nil {
		return err
	}
	go s.tickers()
	s.logger.Debug(s.settings.String())
	return nil
}

func (s *Server) Address() string {
	return s.TcpServer.Address()
}

func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	err := s.TcpServer.Stop()
	s.logger.Infof("Shut down after %d renders", s.service.renderedCount())
	if s.logFile != nil {
		misc.CheckError(s.logFile.Close(), s.logger, misc.Warning)
		s.logFile = nil
	}
	return err
}

func (s *Server) tickers() {
	heartBeat := time.NewTicker(30 * time.Second)
	defer heartBeat.Stop()

	for {
		select {
		case <-heartBeat.C:
			s.logger.Debug("Heart beat ticker")
			s.logger.Infof("Images [Rendered: %d]", s.service.renderedCount())
		case <-s.stop:
			return
		}
	}
}
