package remote

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
	"github.com/NeXX451/Mandelbrot/rpc"
	"github.com/NeXX451/Mandelbrot/server"
)

// DefaultCallTimeout bounds a single render request.
const DefaultCallTimeout = 2 * time.Minute

var ErrBadReply = errors.New("reply does not match the requested image")

// Client asks a render server for images. SuperSampling is sent with every request.
type Client struct {
	logger bslogger.Logger

	SuperSampling int
	TcpClient     *rpc.TcpClient
}

func NewClient(serverAddress string) *Client {
	tcpClient := rpc.NewTcpClient(serverAddress, "RenderClient")
	tcpClient.CallTimeout = DefaultCallTimeout
	return &Client{
		logger:    bslogger.NewLogger(fmt.Sprintf("Remote %s", serverAddress), bslogger.Normal, nil),
		TcpClient: tcpClient,
	}
}

func (c *Client) Connect() error {
	return c.TcpClient.Connect()
}

func (c *Client) Disconnect() error {
	return c.TcpClient.Disconnect()
}

// RollCall checks the server is still answering.
func (c *Client) RollCall() bool {
	var nothing misc.Nothing
	var present bool
	if err := c.TcpClient.Call("RenderService.RollCall", nothing, &present); err != nil {
		c.logger.Warningf("Server missed roll call: %s", err)
		return false
	}
	return present
}

// Render has the server draw the viewport and rebuilds the image from the reply.
func (c *Client) Render(viewport mandelbrot.Viewport, colors mandelbrot.ColorSettings) (*mandelbrot.Frame, error) {
	request := server.RenderRequest{
		Bounds: mandelbrot.Bounds{
			ReStart: viewport.ReStart(),
			ImStart: viewport.ImStart(),
			ReEnd:   viewport.ReEnd(),
		},
		Colors:        colors,
		Height:        viewport.Height(),
		SuperSampling: c.SuperSampling,
		Width:         viewport.Width(),
	}

	startTime := time.Now()
	var reply server.RenderReply
	if err := c.TcpClient.Call("RenderService.Render", request, &reply); err != nil {
		return nil, err
	}

	if reply.Width != request.Width || reply.Height != request.Height || len(reply.Pix) != reply.Stride*reply.Height || reply.Stride < 4*reply.Width {
		return nil, fmt.Errorf("%w: got %dx%d with %d bytes", ErrBadReply, reply.Width, reply.Height, len(reply.Pix))
	}
	c.logger.Debugf("Remote render of %s took %s", viewport.String(), time.Since(startTime))

	return &mandelbrot.Frame{
		Image: &image.RGBA{
			Pix:    reply.Pix,
			Stride: reply.Stride,
			Rect:   image.Rect(0, 0, reply.Width, reply.Height),
		},
		MaxIterations: reply.MaxIterations,
		Viewport:      viewport,
	}, nil
}

// RenderToFile connects, renders the settings' window, saves it and disconnects.
func RenderToFile(settings Settings) error {
	viewport, err := settings.Mandelbrot.Viewport()
	if err != nil {
		return err
	}

	client := NewClient(settings.ServerAddress)
	client.SuperSampling = settings.Mandelbrot.SuperSampling
	if err := client.Connect(); err != nil {
		return err
	}
	defer func() {
		misc.CheckError(client.Disconnect(), client.logger, misc.Warning)
	}()

	frame, err := client.Render(viewport, settings.Mandelbrot.Colors)
	if err != nil {
		return err
	}
	if err := misc.SaveImage(settings.OutputFile, frame.Image); err != nil {
		return err
	}
	client.logger.Infof("Saved image rendered by %s to %s", client.TcpClient.ServerAddress(), settings.OutputFile)
	return nil
}
