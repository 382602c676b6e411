package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// flagBinder is implemented by controllers that own subcommand flags.
type flagBinder interface {
	AddFlags(cmd *cobra.Command)
}

// preflighter is implemented by controllers that refuse to run on incomplete
// configuration. Its error aborts the process with a non-zero status.
type preflighter interface {
	Preflight() error
}

// runtimeApp is the application wired with the settings of this invocation.
type runtimeApp struct {
	app *internal.AppInternal
}

func (r *runtimeApp) controller(name string) (entities.Controller, error) {
	if r.app == nil {
		return nil, fmt.Errorf("application not initialized for %q", name)
	}
	for _, controller := range r.app.GetControllers() {
		if commandName(controller.GetBind().Use) == name {
			return controller, nil
		}
	}
	return nil, fmt.Errorf("no controller bound to %q", name)
}

func buildRootCommand(runtime *runtimeApp) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "repodoctor",
		Short: "AI code review of remote repositories",
		Long: `Repo Doctor lets two cooperating agents review a remote repository:
a Navigator explores the file tree and an Analyst reads the core files
and writes IMPROVEMENTS.md with bugs, security risks and performance issues.

The repository files are reached through a small tool server that only
lists directories and reads text files, skipping binaries, lock files
and anything too large to be useful.

Usage:
  repodoctor analyze owner/repo   Run the review team
  repodoctor serve                Serve the repository tools over MCP (stdio)
  repodoctor list owner/repo src  Inspect what the agents can see`,
		SilenceUsage: true,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			verbose, _ := command.Flags().GetBool("verbose")
			if verbose {
				logger.SetLevel(logger.DebugLevel)
			}

			settings, err := loadSettings(command)
			if err != nil {
				return err
			}
			runtime.app, err = injectAppContext(settings)
			return err
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"Auth token for the Git provider (overrides env var detection)")
	cmd.PersistentFlags().String("provider", "",
		"Git provider to read from: github, gitlab or git (default from config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

// addSubcommands binds one subcommand per controller. The metadata comes from
// the bootstrap app; the controller that runs comes from the app wired with
// the settings of this invocation.
func addSubcommands(rootCmd *cobra.Command, bootstrap *internal.AppInternal, runtime *runtimeApp) {
	for _, controller := range bootstrap.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				ctrl, err := runtime.controller(command.Name())
				if err != nil {
					return err
				}
				if checked, ok := ctrl.(preflighter); ok {
					if err = checked.Preflight(); err != nil {
						return err
					}
				}
				ctrl.Execute(command, arguments)
				return nil
			},
		}

		// Add controller-specific flags
		if binder, ok := controller.(flagBinder); ok {
			binder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

// loadSettings reads the configuration and applies the persistent flag overrides.
func loadSettings(command *cobra.Command) (*entities.Settings, error) {
	configPath, _ := command.Flags().GetString("config")
	providerType, _ := command.Flags().GetString("provider")
	token, _ := command.Flags().GetString("token")

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if providerType != "" && providerType != settings.Provider.Type {
		settings.Provider.Type = providerType
		if envToken := entities.TokenFromEnv(providerType); envToken != "" {
			settings.Provider.Token = envToken
		}
	}
	if token != "" {
		settings.Provider.Token = token
	}

	return settings, nil
}

func commandName(use string) string {
	name, _, _ := strings.Cut(use, " ")
	return name
}

// newCLI builds the full command tree.
func newCLI() (*cobra.Command, error) {
	bootstrap, err := injectAppContext(entities.NewDefaultSettings())
	if err != nil {
		return nil, err
	}

	runtime := &runtimeApp{}
	cobraRoot := buildRootCommand(runtime)
	addSubcommands(cobraRoot, bootstrap, runtime)
	return cobraRoot, nil
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	cobraRoot, err := newCLI()
	if err != nil {
		logger.Fatalf("Error wiring 'repodoctor': %s", err)
	}

	if err = cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'repodoctor': %s", err)
	}
}
