package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsbox-dev/jsbox"
	"github.com/jsbox-dev/jsbox/hostfunc"
	"github.com/jsbox-dev/jsbox/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run JavaScript code",
	Long: `Execute JavaScript code through the embedded engine.

Code can be provided via:
  - File argument: jsbox run script.js
  - Inline flag: jsbox run -c '1+1'
  - Stdin: echo '1+1' | jsbox run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to execute")
	cmd.Flags().Bool("stdlib", false, "Enable the engine's standard modules")
	cmd.Flags().Uint64("memory-limit", 0, "Heap growth limit in bytes (0 = unlimited)")
	cmd.Flags().Uint64("gc-threshold", 0, "Heap growth forcing a collection, in bytes")
	cmd.Flags().Bool("sandbox", false, "Run in the wasm-isolated QuickJS backend")
	cmd.Flags().Duration("timeout", 30*time.Second, "Execution timeout (sandbox only)")
	cmd.Flags().StringSlice("allow-host", nil, "Allow hostcall HTTP to host (sandbox, repeatable)")
}

// resolveSource picks the program text and its diagnostic label from
// the inline flag, a file argument, or stdin, in that order.
func resolveSource(code string, args []string, stdin io.Reader) (source, label string, err error) {
	switch {
	case code != "":
		return code, "<eval>", nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", err
		}
		if len(data) == 0 {
			return "", "", errors.New("no input")
		}
		return string(data), "<stdin>", nil
	}
}

func runRun(cmd *cobra.Command, args []string) {
	code, _ := cmd.Flags().GetString("code")
	useSandbox, _ := cmd.Flags().GetBool("sandbox")

	if code == "" && len(args) == 0 {
		// Only fall through to stdin when input is piped.
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			cmd.Help()
			return
		}
	}

	source, label, err := resolveSource(code, args, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if useSandbox {
		runSandboxed(cmd, source)
		return
	}

	stdlib, _ := cmd.Flags().GetBool("stdlib")
	memLimit, _ := cmd.Flags().GetUint64("memory-limit")
	gcThreshold, _ := cmd.Flags().GetUint64("gc-threshold")

	var opts []jsbox.Option
	if stdlib {
		opts = append(opts, jsbox.WithStdlib())
	}
	if memLimit > 0 {
		opts = append(opts, jsbox.WithMemoryLimit(memLimit))
	}
	if gcThreshold > 0 {
		opts = append(opts, jsbox.WithGCThreshold(gcThreshold))
	}
	opts = append(opts, jsbox.WithConsole(func(msg string) {
		fmt.Println(msg)
	}))

	eng, err := jsbox.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	result, err := eng.Eval(source, label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result)
}

func runSandboxed(cmd *cobra.Command, source string) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	allowedHosts, _ := cmd.Flags().GetStringSlice("allow-host")

	registry := hostfunc.NewRegistry()
	if len(allowedHosts) > 0 {
		registry.Register("http_get", hostfunc.NewHTTPGet(hostfunc.HTTPConfig{
			AllowedHosts: allowedHosts,
		}))
	}

	result := sandbox.Run(source, sandbox.Config{
		Timeout:  timeout,
		Registry: registry,
		Logger:   newLogger(cmd),
	})

	fmt.Print(result.Output)
	if result.Error != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Error)
		os.Exit(1)
	}
}
