package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          filepath.Base(os.Args[0]),
	Short:        "fbsplash show a splash image while a password is entered",
	Long:         "fbsplash draws a bitmap on the Linux frame buffer and reads a password from the console.\nThe password is printed to stdout or written to the file given with --write.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(splash)
	},
}

func init() {
	cobra.EnablePrefixMatching = true
	// local flags
	rootCmd.Flags().StringVarP(&writeFlag, `write`, `w`, ``, `write the password to this file instead of stdout`)
	rootCmd.Flags().StringVarP(&imageFlag, `image`, `i`, ``, `splash bitmap`)
	rootCmd.Flags().StringVar(&deviceFlag, `device`, ``, `frame buffer device`)
	rootCmd.Flags().StringVar(&consoleFlag, `console`, ``, `console used for keyboard input and mode switching`)
	rootCmd.Flags().StringVar(&ttyBackendFlag, `tty-backend`, ``, `raw console implementation: termios or console`)
	rootCmd.Flags().StringVarP(&configFlag, `config`, `c`, ``, `TOML config file`)
	rootCmd.Flags().BoolVarP(&debugFlag, `debug`, `d`, false, `debug errors`)
	rootCmd.Flags().BoolVarP(&silentFlag, `silent`, `s`, false, `silence errors`)
	rootCmd.Flags().StringVarP(&logFileFlag, `log-file`, `l`, ``, `log file`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	writeFlag      string
	imageFlag      string
	deviceFlag     string
	consoleFlag    string
	configFlag     string
	ttyBackendFlag string
	debugFlag      bool
	silentFlag     bool
	logFileFlag    string
)
