package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ib-77/intcode/internal/config"
	"github.com/ib-77/intcode/internal/logging"
	"github.com/ib-77/intcode/internal/ui"
	"github.com/ib-77/intcode/pkg/intcode"
)

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		msg := ui.ErrorMsg("%v", err)
		if kind := intcode.ErrorKind(err); kind != "Error" {
			msg += " " + ui.Muted("("+kind+")")
		}
		fmt.Fprintln(os.Stderr, msg)
		stop()
		os.Exit(1)
	}
}

// settings is shared by every subcommand once the root has loaded it.
type settings struct {
	configPath string
	debug      bool
	noColor    bool

	cfg *config.Config
}

func rootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:           "intcode",
		Short:         "Run and wire Intcode programs",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Settings file (default: nearest "+config.FileName+")")
	root.PersistentFlags().BoolVar(&s.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "Disable colours")

	root.AddCommand(runCmd(s))
	root.AddCommand(disasmCmd(s))
	root.AddCommand(amplifyCmd(s))
	root.AddCommand(paintCmd(s))
	root.AddCommand(arcadeCmd(s))
	root.AddCommand(exploreCmd(s))

	return root
}

func (s *settings) load() error {
	var err error
	if s.configPath != "" {
		s.cfg, err = config.Load(s.configPath)
	} else {
		s.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}

	level := s.cfg.Log.Level
	if s.debug {
		level = logging.LevelDebug
	}
	if err := logging.Configure(level); err != nil {
		return err
	}
	if s.noColor {
		ui.Plain()
	}
	return nil
}

func (s *settings) machineOptions() []intcode.Option {
	return []intcode.Option{intcode.WithMemoryLimit(s.cfg.Machine.MemoryLimit)}
}
