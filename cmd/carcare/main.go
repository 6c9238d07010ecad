package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fentz26/carcare/internal/audit"
	"github.com/fentz26/carcare/internal/config"
	"github.com/fentz26/carcare/internal/garage"
	"github.com/fentz26/carcare/internal/log"
	"github.com/fentz26/carcare/internal/schedule"
	"github.com/fentz26/carcare/internal/shell"
	"github.com/fentz26/carcare/internal/store"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the global flags and the configuration they resolve to.
type options struct {
	file       string
	configPath string
	year       int
	debug      bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "carcare",
		Short: "carcare - car maintenance task tracker",
		Long: `carcare keeps a list of car maintenance tasks in a plain text file and
suggests routine maintenance based on the vehicle's type, age and mileage.

Run without a subcommand to start the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.session(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return shell.New(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.file, "file", "", "Task file (default from config, else tasks.txt)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.carcare/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&opts.year, "year", 0, "Current year for age calculations (default: this year)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newTaskCmd(opts),
		newRecommendCmd(opts),
		newTUICmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// resolve applies defaults < config file < flags.
func (o *options) resolve(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromHome()
	}
	if err != nil {
		return err
	}

	if o.file != "" {
		cfg.TasksFile = o.file
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	if o.year == 0 {
		o.year = time.Now().Year()
	}
	log.SetLevel(cfg.LogLevel)
	log.Debug().Str("command", cmd.Name()).Str("file", cfg.TasksFile).Int("year", o.year).Msg("configured")

	o.cfg = cfg
	return nil
}

func (o *options) engine() (*schedule.Engine, error) {
	table, err := o.cfg.Table()
	if err != nil {
		return nil, err
	}
	return schedule.NewEngine(table), nil
}

// session loads the task file and wires the service. Load notices are
// written to notices and returned.
func (o *options) session(notices io.Writer) (*garage.Service, *store.Notice, error) {
	engine, err := o.engine()
	if err != nil {
		return nil, nil, err
	}
	s, notice := store.Load(o.cfg.TasksFile)
	if notice != nil {
		fmt.Fprintln(notices, notice.Message)
	}
	return garage.NewService(s, engine, audit.NewRecorder(log.Logger()), o.year), notice, nil
}

// writableSession is session for commands that save without asking. A task
// file that could not be read completely is never overwritten.
func (o *options) writableSession(notices io.Writer) (*garage.Service, error) {
	svc, notice, err := o.session(notices)
	if err != nil {
		return nil, err
	}
	if notice != nil && errors.Is(notice.Err, store.ErrFileIO) {
		return nil, fmt.Errorf("refusing to modify %s: %w", o.cfg.TasksFile, notice.Err)
	}
	return svc, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carcare %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
