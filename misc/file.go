package misc

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, errors.New("no filename supplied")
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	return fileBytes, nil
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	// write contents to open file
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, err)
	}

	return bytesWritten, nil
}

// ImageFileName is the default name of a saved image, mandelbrot<unix millis>.png.
func ImageFileName(now time.Time) string {
	return fmt.Sprintf("mandelbrot%d.png", now.UnixMilli())
}

// EncodeImage writes img as jpeg when the file name ends in .jpg or .jpeg and as png otherwise.
func EncodeImage(w io.Writer, fileName string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(w, img)
	}
}

func SaveImage(fileName string, img image.Image) error {
	if fileName == "" {
		return errors.New("no filename supplied")
	}
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create image %s - %w", fileName, err)
	}
	if err := EncodeImage(file, fileName, img); err != nil {
		file.Close()
		return fmt.Errorf("unable to encode image %s - %w", fileName, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("unable to close image %s - %w", fileName, err)
	}
	return nil
}
