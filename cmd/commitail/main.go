package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"commitail-cli/internal/app"
	"commitail-cli/internal/orchestrator"
	"commitail-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = newRootCmd()

// newRootCmd assembles the command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "commitail",
		Short: "Append a configured suffix to your commit message",
		Long: `commitail appends one of a project's configured suffixes ("[skip ci]",
"🔧 chore", ...) to a commit message, and can commit the result.

Suffixes live in commitail.config.json at the root of the workspace. Run
'commitail init' to create one. Selection is interactive unless the config sets
"manual": false, and can be overridden with -i (force interactive) or
-y (use defaultIndex without prompting).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
				printVersion(cmd)
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringP("settings", "s", "", "settings file path (default ~/.config/commitail/settings.toml)")
	root.PersistentFlags().StringP("workspace", "w", "", "workspace root (default: the enclosing git worktree)")
	root.PersistentFlags().Bool("verbose", false, "mirror the log channel to stderr")
	root.PersistentFlags().String("log-file", "", "append log records to this file")
	root.Flags().BoolP("version", "v", false, "print version information")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newAppendCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information including build version, commit, date, and platform details.",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	}
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "commitail version %s\n", version)
	fmt.Fprintf(out, "  commit: %s\n", commit)
	fmt.Fprintf(out, "  built: %s\n", date)
	fmt.Fprintf(out, "  go version: %s\n", goVersion)
	fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample commitail.config.json",
		Long: `Write the default config to the workspace root and add it to the ignore list.
An existing config is only replaced after confirmation, or with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("invalid force flag: %w", err)
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.Init(cmd.Context(), env, force)
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "overwrite an existing config without asking")
	return cmd
}

func newAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append [message]",
		Short: "Append a suffix to a commit message",
		Long: `Append the selected suffix to a commit message. The message is taken from the
argument, or from a file with -m (such as .git/COMMIT_EDITMSG, which is then
updated in place). A message that already ends with the suffix is left alone.

A message file is rewritten in place unless --target is given; the target from
the settings file only applies to messages passed as an argument. Without -m,
a git repository with no changes at all is refused.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildAppendRequest(cmd, args)
			if err != nil {
				return fmt.Errorf("invalid arguments: %w", err)
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.Append(cmd.Context(), env, request)
			})
		},
	}
	addMessageFlags(cmd)
	cmd.Flags().StringP("target", "t", "", "output target (clipboard, stdout, file:/path)")
	return cmd
}

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit [message]",
		Short: "Append a suffix and commit the staged changes",
		Long: `Append the selected suffix to the message and run git commit with it. If the
message already ends with the suffix it is committed unchanged. The message is
kept when the commit fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildAppendRequest(cmd, args)
			if err != nil {
				return fmt.Errorf("invalid arguments: %w", err)
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.Commit(cmd.Context(), env, request)
			})
		},
	}
	addMessageFlags(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a config file",
		Long:  "Load and validate a config file, the workspace's one by default, and report the result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.Validate(env, path)
			})
		},
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured suffixes",
		Long: `List the configured suffixes. The layout can be changed with --template, which
takes Go template text (sprig functions available) or @path to read it from a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := cmd.Flags().GetString("template")
			if err != nil {
				return fmt.Errorf("invalid template flag: %w", err)
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.List(env, source)
			})
		},
	}
	cmd.Flags().StringP("template", "T", "", "template text, or @file")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("invalid output flag: %w", err)
			}
			return withEnv(cmd, func(env *app.Env) error {
				return app.Show(env, format)
			})
		},
	}
	cmd.Flags().StringP("output", "o", "json", "output format (json, yaml)")
	return cmd
}

// addMessageFlags registers the flags shared by append and commit
func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message-file", "m", "", "read the message from this file and update it in place")
	cmd.Flags().BoolP("interactive", "i", false, "always pick the suffix interactively")
	cmd.Flags().BoolP("yes", "y", false, "use the default suffix without prompting")
	cmd.Flags().BoolP("numbers", "n", false, "pick with number keys instead of arrow keys")
	cmd.Flags().Bool("no-create", false, "do not offer to create a config when none exists")
}

// buildAppendRequest constructs an AppendRequest from command flags and arguments
func buildAppendRequest(cmd *cobra.Command, args []string) (*models.AppendRequest, error) {
	request := models.NewAppendRequest()

	if len(args) > 0 {
		request.Message = strings.TrimSpace(args[0])
	}

	var err error

	if request.MessageFile, err = cmd.Flags().GetString("message-file"); err != nil {
		return nil, fmt.Errorf("invalid message-file flag: %w", err)
	}

	if request.Message != "" && request.MessageFile != "" {
		return nil, fmt.Errorf("cannot use both a message argument and --message-file")
	}

	if request.ForceNonInteractive, err = cmd.Flags().GetBool("yes"); err != nil {
		return nil, fmt.Errorf("invalid yes flag: %w", err)
	}

	if request.ForceInteractive, err = cmd.Flags().GetBool("interactive"); err != nil {
		return nil, fmt.Errorf("invalid interactive flag: %w", err)
	}

	if request.ForceInteractive && request.ForceNonInteractive {
		return nil, fmt.Errorf("cannot use both --interactive and --yes flags")
	}

	// Only append has a target
	if cmd.Flags().Lookup("target") != nil {
		if request.Target, err = cmd.Flags().GetString("target"); err != nil {
			return nil, fmt.Errorf("invalid target flag: %w", err)
		}
	}

	noCreate, err := cmd.Flags().GetBool("no-create")
	if err != nil {
		return nil, fmt.Errorf("invalid no-create flag: %w", err)
	}
	request.OfferCreate = !noCreate

	return request, nil
}

// buildOptions collects the global flags into app.Options
func buildOptions(cmd *cobra.Command) (app.Options, error) {
	opts := app.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	var err error
	if opts.SettingsPath, err = cmd.Flags().GetString("settings"); err != nil {
		return opts, fmt.Errorf("invalid settings flag: %w", err)
	}
	if opts.Workspace, err = cmd.Flags().GetString("workspace"); err != nil {
		return opts, fmt.Errorf("invalid workspace flag: %w", err)
	}
	if opts.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return opts, fmt.Errorf("invalid verbose flag: %w", err)
	}
	if opts.LogFile, err = cmd.Flags().GetString("log-file"); err != nil {
		return opts, fmt.Errorf("invalid log-file flag: %w", err)
	}
	if cmd.Flags().Lookup("numbers") != nil {
		if opts.NumberSelect, err = cmd.Flags().GetBool("numbers"); err != nil {
			return opts, fmt.Errorf("invalid numbers flag: %w", err)
		}
	}

	return opts, nil
}

// withEnv sets up an app.Env for the duration of fn
func withEnv(cmd *cobra.Command, fn func(env *app.Env) error) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	env, err := app.Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	return fn(env)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	if !orchestrator.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(orchestrator.ExitCodeOf(err))
}
