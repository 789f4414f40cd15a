package main

import (
	"errors"
	"flag"
	"fmt"
	"github.com/swdee/go-svstim"
	"github.com/swdee/go-svstim/preprocess"
	"github.com/swdee/go-svstim/render"
	"github.com/swdee/go-svstim/verify"
	"log"
	"os"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	cfg := svstim.DefaultConfig()

	// read in cli flags
	inputFile := flag.String("input", "", "Image file to convert")
	outputFile := flag.String("output", "image_input_bin.sv", "Stimulus file to write")
	delay := flag.String("delay", cfg.Delay, "Delay literal placed after each assignment")
	signal := flag.String("signal", cfg.Signal, "Testbench signal assigned on each line")
	width := flag.Int("width", cfg.Width, "Width to resize the image to")
	height := flag.Int("height", cfg.Height, "Height to resize the image to")
	backend := flag.String("backend", "native", "Image backend to decode and resize with, native or opencv")
	resample := flag.String("resample", "bicubic", "Resize interpolation, nearest, bilinear, bicubic, area or lanczos")
	fit := flag.String("fit", "stretch", "Aspect handling, stretch or letterbox")
	pad := flag.String("pad", "0,0,0", "Letterbox padding color as r,g,b")
	previewFile := flag.String("preview", "", "Optionally save the resized image to this file")
	previewScale := flag.Int("preview-scale", 4, "Enlargement factor of the preview image")
	doVerify := flag.Bool("verify", false, "Read the stimulus file back and check it against the image")

	flag.Parse()

	cfg.InputPath = *inputFile
	cfg.OutputPath = *outputFile
	cfg.Delay = *delay
	cfg.Signal = *signal
	cfg.Width = *width
	cfg.Height = *height

	if cfg.InputPath == "" {
		log.Println("Error: an input image is required")
		flag.Usage()
		os.Exit(2)
	}

	loader, err := newLoader(*backend, *resample, *fit, *pad)

	if err != nil {
		log.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	res, err := svstim.Convert(cfg, loader)

	if err != nil {
		var decErr *svstim.DecodeError
		var ioErr *svstim.IOError

		switch {
		case errors.As(err, &decErr):
			log.Fatal("Error reading image: ", err)
		case errors.As(err, &ioErr):
			log.Fatal("Error writing stimulus file: ", err)
		default:
			log.Fatal("Error: ", err)
		}
	}

	log.Printf("SystemVerilog binary file generated: %s (%d lines, %dx%d)\n",
		res.OutputPath, res.Lines, cfg.Width, cfg.Height)

	if *previewFile != "" {
		if err := render.SavePreview(res.Frame, *previewFile, *previewScale); err != nil {
			log.Fatal("Error saving preview: ", err)
		}

		log.Printf("Preview saved to %s\n", *previewFile)
	}

	if *doVerify {
		if err := verifyOutput(cfg, res); err != nil {
			log.Fatal("Verification failed: ", err)
		}
	}
}

// newLoader builds the Loader selected on the command line
func newLoader(backend, resample, fit, pad string) (svstim.Loader, error) {

	opts := preprocess.DefaultOptions()
	var err error

	if opts.Resample, err = preprocess.ParseResample(resample); err != nil {
		return nil, err
	}

	if opts.Fit, err = preprocess.ParseFit(fit); err != nil {
		return nil, err
	}

	if opts.PadColor, err = preprocess.ParseColor(pad); err != nil {
		return nil, err
	}

	switch backend {
	case "native":
		return preprocess.NewNativeLoader(opts), nil
	case "opencv":
		return preprocess.NewOpenCVLoader(opts), nil
	}

	return nil, fmt.Errorf("unknown backend %q", backend)
}

// verifyOutput reads the written file back and compares it to the frame
// that was encoded
func verifyOutput(cfg svstim.Config, res *svstim.Result) error {

	got, format, err := verify.ReadFile(res.OutputPath, cfg.Width, cfg.Height)

	if err != nil {
		return err
	}

	if format.Signal != cfg.Signal || format.Delay != cfg.Delay {
		return fmt.Errorf("file uses %q/%q, expected %q/%q",
			format.Signal, format.Delay, cfg.Signal, cfg.Delay)
	}

	if err := verify.Compare(res.Frame, got); err != nil {
		return err
	}

	log.Println("Verified, channel statistics:")

	for _, cs := range verify.Stats(got) {
		log.Printf("  %s\n", cs)
	}

	return nil
}
