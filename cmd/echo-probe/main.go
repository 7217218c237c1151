// Command echo-probe talks to a running echo device from a PC: it lists
// ports, sends bytes and prints the decoded replies, and drives the
// device's button over RTS.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"uartecho-go/errcode"
	"uartecho-go/services/config"
	"uartecho-go/services/hal/platform"
	"uartecho-go/services/logging"
	"uartecho-go/services/probe"
	"uartecho-go/services/seriallink"
)

var (
	cfgFile string
	v       = viper.New()

	rootCmd = &cobra.Command{
		Use:          "echo-probe",
		Short:        "Exercise a UART classify/echo device from the host",
		SilenceUsage: true,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := enumerator.GetDetailedPortsList()
			if err != nil {
				return err
			}
			for _, p := range ports {
				if p.IsUSB {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tusb %s:%s %s\n", p.Name, p.VID, p.PID, p.SerialNumber)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), p.Name)
				}
			}
			return nil
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send <text>",
		Short: "Send text one byte at a time and print each reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *probe.Session) error {
				return s.Send(cmd.OutOrStdout(), args[0])
			})
		},
	}

	buttonCmd = &cobra.Command{
		Use:       "button press|release",
		Short:     "Drive RTS, wired to the device's button line",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"press", "release"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *probe.Session) error {
				return s.Exec(cmd.OutOrStdout(), args)
			})
		},
	}

	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: send <text> | press | release | baud | quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(func(s *probe.Session) error {
				out := cmd.OutOrStdout()
				sc := bufio.NewScanner(cmd.InOrStdin())
				for fmt.Fprint(out, "> "); sc.Scan(); fmt.Fprint(out, "> ") {
					err := s.ExecLine(out, sc.Text())
					if errors.Is(err, probe.ErrQuit) {
						return nil
					}
					if err != nil {
						fmt.Fprintln(out, "error:", err)
					}
				}
				return sc.Err()
			})
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./echo.yaml)")
	pf.String("port", "", "serial port name")
	pf.Duration("timeout", 0, "reply timeout")
	pf.Bool("follow", true, "follow the device through its rate change")
	pf.String("log-level", "", "debug|info|warn|error")
	_ = v.BindPFlag("serial.port", pf.Lookup("port"))
	_ = v.BindPFlag("probe.reply_timeout", pf.Lookup("timeout"))
	_ = v.BindPFlag("probe.follow_baud", pf.Lookup("follow"))
	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))

	rootCmd.AddCommand(listCmd, sendCmd, buttonCmd, shellCmd)
}

func withSession(fn func(*probe.Session) error) error {
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

	port, err := serial.Open(cfg.Serial.Port, platform.ModeFor(seriallink.Default9600()))
	if err != nil {
		log.Error("failed to open serial port", zap.String("port", cfg.Serial.Port), zap.Error(err))
		return errcode.Wrap(errcode.UnknownPort, "open", err)
	}
	defer func() { _ = port.Close() }()
	if err := port.SetReadTimeout(cfg.Probe.ReplyTimeout); err != nil {
		return errcode.Wrap(errcode.Error, "set_read_timeout", err)
	}
	_ = port.ResetInputBuffer()

	return fn(probe.NewSession(port, cfg.Probe.FollowBaud, log))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
