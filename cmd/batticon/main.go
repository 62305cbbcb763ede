package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/batticon"
	"github.com/esimov/batticon/battery"
	"github.com/esimov/batticon/tray"
	"github.com/esimov/batticon/utils"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const HelpBanner = `
┌┐ ┌─┐┌┬┐┌┬┐┬┌─┐┌─┐┌┐┌
├┴┐├─┤ │  │ ││  │ ││││
└─┘┴ ┴ ┴  ┴ ┴└─┘└─┘┘└┘

Battery percentage tray icon renderer.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// validExtensions lists the supported destination file types.
var validExtensions = []string{".png", ".bmp"}

// maxWorkers sets the maximum number of concurrently running sheet workers.
const maxWorkers = 20

// Version indicates the current build version.
var Version string

var (
	// Flags
	perc        = flag.Int("perc", -1, "Battery percentage to render (0-100)")
	destination = flag.String("out", "", "Destination (.png, .bmp or - for stdout)")
	sheet       = flag.String("sheet", "", "Render every percentage to a contact sheet")
	columns     = flag.Int("cols", 11, "Number of contact sheet columns")
	runTray     = flag.Bool("tray", false, "Run as a tray indicator")
	configPath  = flag.String("config", "", "YAML configuration file")
	fontName    = flag.String("font", "", "Font source: embedded, system, auto or a font file path")
	fill        = flag.String("fill", "", "Template icon background color, e.g. #000000")
	cutout      = flag.String("cutout", "", "Template cutout: hard or soft")
	interval    = flag.Duration("interval", 0, "Battery polling interval of the tray indicator")
	debug       = flag.Bool("debug", false, "Print the layout metrics")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of icons rendered concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	switch {
	case *runTray:
		runIndicator(cfg, renderer)
	case len(*sheet) > 0:
		now := time.Now()
		err := renderSheet(renderer, *sheet)
		printStatus(*sheet, err)
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	case *perc >= 0:
		p := uint8(utils.Min(*perc, batticon.MaxPercentage))
		if *debug {
			printLayout(renderer, p)
		}
		if len(*destination) > 0 {
			err := renderIcon(renderer, p, *destination)
			printStatus(*destination, err)
		} else if !*debug {
			log.Fatal(utils.DecorateText("Please provide the icon destination with the -out flag!", utils.ErrorMessage))
		}
	default:
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a percentage, a contact sheet destination or the -tray flag!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
}

// loadConfig reads the optional configuration file and applies the flag overrides.
func loadConfig() (*batticon.Config, error) {
	cfg := batticon.DefaultConfig()
	if len(*configPath) > 0 {
		var err error
		if cfg, err = batticon.LoadConfig(*configPath); err != nil {
			return nil, err
		}
	}

	switch name := *fontName; name {
	case "":
	case batticon.FontEmbedded, batticon.FontSystem, batticon.FontAuto:
		cfg.Font = name
	default:
		cfg.Font = batticon.FontFileName
		cfg.FontPath = name
	}
	if len(*fill) > 0 {
		cfg.TemplateFill = *fill
	}
	if len(*cutout) > 0 {
		cfg.Cutout = batticon.Cutout(*cutout)
	}
	if *interval > 0 {
		cfg.Interval = *interval
	}
	return cfg, cfg.Validate()
}

// renderIcon renders a single icon to the destination file or to stdout.
func renderIcon(r *batticon.Renderer, p uint8, out string) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		data, err := r.Render(p)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := checkExtension(out); err != nil {
		return err
	}

	img, err := r.Icon(p)
	if err != nil {
		return err
	}
	return writeImage(out, func(f *os.File) error { return batticon.Encode(f, img) })
}

// renderSheet renders the contact sheet of every percentage while showing the spinner.
func renderSheet(r *batticon.Renderer, out string) error {
	if err := checkExtension(out); err != nil {
		return err
	}
	if *workers <= 0 || *workers > maxWorkers {
		*workers = runtime.NumCPU()
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ BATTICON", utils.StatusMessage),
		utils.DecorateText("is rendering the icons...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	go func() {
		if _, ok := <-signalChan; ok {
			spinner.RestoreCursor()
			os.Exit(1)
		}
	}()

	spinner.Start()
	img, err := r.Sheet(*columns, *workers)

	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ BATTICON", utils.StatusMessage),
		utils.DecorateText("is rendering the icons... ✔", utils.DefaultMessage))
	spinner.Stop()

	if err != nil {
		return err
	}
	return writeImage(out, func(f *os.File) error { return batticon.Encode(f, img) })
}

// checkExtension checks that the destination file has one of the supported image extensions.
func checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !utils.Contains(validExtensions, ext) {
		return fmt.Errorf("%v file type not supported", ext)
	}
	return nil
}

func writeImage(path string, encode func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %v", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runIndicator drives the platform tray until the user quits or the process is signaled.
func runIndicator(cfg *batticon.Config, r *batticon.Renderer) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if *debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	var reader battery.Reader = battery.Sysfs{Name: cfg.Battery}
	if *perc >= 0 {
		reader = battery.Fixed(utils.Min(*perc, batticon.MaxPercentage))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug().
		Str("font", fmt.Sprint(cfg.FontSource())).
		Str("cutout", string(cfg.Cutout)).
		Msg("tray configuration")

	driver := tray.NewDriver(r, reader, tray.SystrayIndicator{}, cfg.Interval, logger)
	tray.Run(ctx, driver)
}

// printLayout displays the text placement computed for the percentage.
func printLayout(r *batticon.Renderer, p uint8) {
	lay, err := r.Layout(p)
	if err != nil {
		printStatus("", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s text=%q mode=%s px=%.1f em=%.2f width=%.2f origin=%v\n",
		utils.DecorateText("layout:", utils.StatusMessage),
		lay.Text, batticon.ModeFor(p), lay.FontSize, lay.EmSize, lay.Width, lay.Origin,
	)
}

// printStatus displays the outcome of a render and exits with a non-zero status on failure.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError rendering the icon: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if len(fname) > 0 && fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe icon has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
