package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/moffa90/go-i2ceeprom/eeprom"
	"github.com/moffa90/go-i2ceeprom/protocol"
	"github.com/moffa90/go-i2ceeprom/transport"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled in at link time, e.g. -ldflags "-X .../internal/cli.Version=v1.2.0".
var Version string

// BusEnv names the environment variable holding the default i2c-dev bus.
const BusEnv = "EEPROM_I2C_BUS"

const (
	modeFile   = "file"
	modeManual = "manual"
)

// maxSlaveAddress bounds 7-bit I2C slave addresses.
const maxSlaveAddress = 0x80

type options struct {
	mode      string
	image     string
	bus       string
	sim       bool
	debug     bool
	pageDelay time.Duration
	version   bool
}

// NewRootCommand builds the i2c-eeprom command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "i2c-eeprom <device> <i2c-address>",
		Short: "Flash and inspect I2C EEPROMs.",
		Long: fmt.Sprintf(`Flash an image file to an I2C EEPROM and verify it, or run single
operations against it interactively.

Supported devices: %v`, protocol.Devices()),
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", "", "selection of file or manual mode (file, f, manual, m)")
	flags.StringVarP(&opts.image, "image", "i", "", "image .txt file to write in file mode")
	flags.StringVar(&opts.bus, "bus", defaultBus(), "i2c-dev bus the EEPROM is attached to (env "+BusEnv+")")
	flags.BoolVar(&opts.sim, "sim", false, "use an in-memory simulated EEPROM instead of the bus")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug output")
	flags.DurationVar(&opts.pageDelay, "page-delay", eeprom.DefaultPageDelay, "pause between page writes")
	flags.BoolVar(&opts.version, "version", false, "report version of this executable")

	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	if opts.debug {
		log.SetLevel(log.DebugLevel)
	}

	mode, err := normalizeMode(opts.mode)
	if err != nil {
		return err
	}

	dev, err := protocol.Lookup(args[0])
	if err != nil {
		return err
	}

	slave, err := protocol.ParseAddress(args[1], maxSlaveAddress)
	if err != nil {
		return fmt.Errorf("invalid i2c address %q: %w", args[1], err)
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if mode == "" && !interactive(in) {
		return fmt.Errorf("no --mode given and stdin is not a terminal")
	}

	logger := newLogger(log.WithFields(log.Fields{"device": dev.Name, "slave": slave.String()}))

	port, closePort, err := openPort(opts, dev, int(slave.Value()))
	if err != nil {
		return err
	}
	defer closePort()
	logger.Debug("port opened", "port", fmt.Sprint(port))

	if err := port.Poll(); err != nil {
		return fmt.Errorf("invalid eeprom address %s, could not poll slave: %w", slave, err)
	}
	fmt.Fprintln(out, "Successful connection to EEPROM slave")

	a := &app{
		out:       out,
		menu:      NewMenu(in, out),
		port:      port,
		device:    dev,
		logger:    logger,
		pageDelay: opts.pageDelay,
	}

	if mode == "" {
		choice, ok, err := a.menu.Choose("Which mode do you want to use?", []string{"Manual Mode", "File Mode"})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Program quit early")
			return nil
		}
		mode = modeManual
		if choice == "File Mode" {
			mode = modeFile
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if mode == modeFile {
		return a.fileMode(ctx, opts.image)
	}
	return a.manualMode()
}

func normalizeMode(mode string) (string, error) {
	switch mode {
	case "":
		return "", nil
	case "file", "f":
		return modeFile, nil
	case "manual", "m":
		return modeManual, nil
	default:
		return "", fmt.Errorf("invalid mode %q: choose from file, f, manual, m", mode)
	}
}

// interactive reports whether in is a terminal. Readers that are not files
// (tests, scripted input) count as interactive.
func interactive(in io.Reader) bool {
	if f, ok := in.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return true
}

func openPort(opts *options, dev protocol.Device, slave int) (eeprom.Port, func() error, error) {
	if opts.sim {
		return transport.NewSim(dev), func() error { return nil }, nil
	}

	port, err := transport.OpenI2CDev(opts.bus, slave)
	if err != nil {
		return nil, nil, err
	}
	return port, port.Close, nil
}

func defaultBus() string {
	if bus := os.Getenv(BusEnv); bus != "" {
		return bus
	}
	return transport.DefaultBus
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, "i2c-eeprom ")
	if Version != "" {
		// Built with -ldflags
		fmt.Fprint(w, Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Fprint(w, info.Main.Version)
	} else {
		fmt.Fprint(w, "(unknown version)")
	}
	fmt.Fprintln(w)
}
