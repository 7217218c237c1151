// Command echo-host runs the classify/echo loop on a PC serial port. The
// port's CTS line plays the button and DTR plays the LED, so the same
// control loop can be exercised without the board.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"uartecho-go/services/button"
	"uartecho-go/services/config"
	"uartecho-go/services/echo"
	"uartecho-go/services/hal/platform"
	"uartecho-go/services/logging"
	"uartecho-go/services/seriallink"
)

var (
	cfgFile string
	v       = viper.New()

	rootCmd = &cobra.Command{
		Use:   "echo-host",
		Short: "Run the UART classify/echo loop on a host serial port",
		Long: "echo-host opens a serial port at 9600 8N1, replies N/L/O to every byte " +
			"and moves to 19200 on 'c'. CTS is read as an active-low button and DTR mirrors it.",
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (default ./echo.yaml)")
	f.String("port", "", "serial port name, e.g. /dev/ttyUSB0 or COM3")
	f.Duration("poll-timeout", 0, "bounded wait used to emulate the receive flag")
	f.String("log-level", "", "debug|info|warn|error")
	_ = v.BindPFlag("serial.port", f.Lookup("port"))
	_ = v.BindPFlag("serial.poll_timeout", f.Lookup("poll-timeout"))
	_ = v.BindPFlag("logging.level", f.Lookup("log-level"))
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	port := platform.NewSerialPort(cfg.Serial.Port, cfg.Serial.PollTimeout)
	defer func() { _ = port.Close() }()

	link := seriallink.New(port)
	if err := link.Init(); err != nil {
		log.Error("failed to initialise serial link", zap.String("port", cfg.Serial.Port), zap.Error(err))
		return err
	}
	mon := button.New(port.LED(), port.Button())
	if err := mon.Init(); err != nil {
		log.Error("failed to initialise button monitor", zap.Error(err))
		return err
	}
	log.Info("echo loop started",
		zap.String("port", cfg.Serial.Port),
		zap.Uint32("baud", link.Config().BaudRate()),
		zap.Duration("poll_timeout", cfg.Serial.PollTimeout),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	echo.New(link, mon, logging.NewObserver(log)).Run(ctx)

	log.Info("echo loop stopped", zap.Stringer("baud", link.Baud()))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
