package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bcdetect",
	Short: "Breast cancer prediction from tumor measurements",
	Long: "bcdetect validates the 30 cell nucleus measurements of a breast mass and " +
		"classifies the tumor as benign or malignant with a trained model.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides BCDETECT_CONFIG env var)")
	rootCmd.PersistentFlags().String("model", "", "Path to the ONNX model (overrides BCDETECT_MODEL env var)")
	rootCmd.PersistentFlags().String("backend", "", "Classifier backend: onnx or mock")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
