package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/frizinak/zoomfit/internal/config"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "zoomfit [uri]",
	Short: "Show an image fitted to the terminal window, zoomable and pannable",
	Long: `zoomfit embeds an X11 window in the terminal it runs in and shows a
single image fitted to it. The image is re-fitted whenever the terminal is
resized or the screen is rotated.

Keys:
  + =        zoom in
  -          zoom out
  0          reset zoom
  h j k l    pan (arrow keys work too)
  q ctrl-c   quit`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: user config dir)")
	addViewFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func loader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

func loadConfig() (*config.Config, error) {
	l, err := loader()
	if err != nil {
		return nil, err
	}
	return l.Load()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("zoomfit: ")
	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
