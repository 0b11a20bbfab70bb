package main

import (
	"fmt"
	"os"

	"queue-sim-service/cmd/qsim/commands"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "qsim",
	Short: "qsim - queue and newsvendor simulations from the terminal",
	Long: `qsim drives the simulation engines without the HTTP server: a
single-server queue fed by random-number distribution tables, and a
newsvendor profit model. Results print as tables and can be exported
to CSV files. The runs subcommand queries a running server's archive.`,
}

func main() {

	// Register commands

	rootCmd.AddCommand(commands.RunCmd)

	rootCmd.AddCommand(commands.NewsvendorCmd)

	rootCmd.AddCommand(commands.RunsCmd)

	rootCmd.AddCommand(commands.SampleConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.qsim.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "qsim server URL")

	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".qsim")
	}

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}
