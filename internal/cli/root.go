package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "verifact",
	Short: "Verifact - fact-check document claims against live web evidence",
	Long: `Verifact extracts verifiable factual claims from a document and checks
each claim against live web search results.

The pipeline has three stages:
- Extract plain text from a PDF (or plain-text) document
- Ask a language model to enumerate verifiable claims
- For each claim, run a web search and ask the model to judge the
  claim against the retrieved evidence

Each claim receives a verdict: VERIFIED, INACCURATE, FALSE, ERROR, or
UNKNOWN, with an explanation, a confidence tier, and the source URLs the
judgment was based on.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("verifact v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.verifact/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file, and VERIFACT_* env variables
func initConfig() {
	// A local .env may carry the API keys, as in development setups
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.verifact")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERIFACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadAPIKeys pulls the two required secrets from the environment.
// Absence of either blocks startup before any pipeline work begins.
func loadAPIKeys() (openaiKey, tavilyKey string, err error) {
	openaiKey = os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		return "", "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	tavilyKey = os.Getenv("TAVILY_API_KEY")
	if tavilyKey == "" {
		return "", "", fmt.Errorf("TAVILY_API_KEY environment variable not set")
	}

	return openaiKey, tavilyKey, nil
}
