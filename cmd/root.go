package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/teichholz/goditor/application"
	"github.com/teichholz/goditor/commands"
	"github.com/teichholz/goditor/config"
	"github.com/teichholz/goditor/editor"
	"github.com/teichholz/goditor/files"
	"github.com/teichholz/goditor/logging"
)

var (
	version   = "dev"
	cfgFile   string
	logFile   string
	verbosity int
)

var rootCmd = &cobra.Command{
	Use:          "goditor [file]",
	Short:        "A small terminal text editor",
	Long:         `goditor edits one plain text file in the terminal. Ctrl-S saves, Ctrl-P opens the command line, Ctrl-Q quits.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/goditor/config.json or ~/.goditor/config.json)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "",
		"log file (default: goditor.log next to the config file)")
	rootCmd.Flags().IntVarP(&verbosity, "verbose", "v", 0,
		"log verbosity, 2 logs every command")
}

func runEditor(cmd *cobra.Command, args []string) (err error) {
	if logFile == "" {
		dir := config.DefaultDir()
		if cfgFile != "" {
			dir = filepath.Dir(cfgFile)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		logFile = filepath.Join(dir, "goditor.log")
	}

	log, closeLog, err := logging.New(logFile, verbosity)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() {
		if closeErr := closeLog(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	conf := config.NewConfig(log, cfgFile)
	if err := conf.Init(); err != nil {
		return err
	}
	settings := conf.Settings()

	store := files.NewOsStore()
	ed := editor.NewController(log.WithName("editor"),
		editor.WithStore(store),
		editor.WithTrimOnSave(settings.Editor.TrimFiles))
	if len(args) == 1 {
		if err := openDocument(ed, store, args[0]); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnablePaste()

	app := application.New(log, screen, ed, commands.DefaultRegistry(log), settings)
	conf.OnChange(app.SettingsChanged)
	if err := conf.Watch(); err != nil {
		// editing works without live reload
		log.Error(err, "watching config", "file", conf.File())
	}
	defer func() {
		if cleanupErr := conf.Cleanup(); cleanupErr != nil {
			log.Error(cleanupErr, "closing config watcher")
		}
	}()

	return app.Run()
}

// openDocument loads path into ed. A file that does not exist yet opens as an
// empty document that Save will create.
func openDocument(ed *editor.Controller, store *files.Store, path string) error {
	if !store.Exists(path) {
		ed.SetPath(path)
		return nil
	}
	return ed.Execute(commands.Load{Path: path})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
