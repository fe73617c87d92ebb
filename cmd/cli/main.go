package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"weft/internal/cli/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Command line client for the weft CI server",
		Long: `weft manages workflow definitions and runs on a weft server:
create or update a workflow from a YAML file, trigger it manually, and
inspect run history down to per-step output.

With no arguments weft starts an interactive session. With arguments it
executes a single command and exits, so it can be used from scripts:

  weft login -u admin -p secret
  weft create -f ci.yaml
  weft trigger -n bayes-ci`,
		Run: func(c *cobra.Command, args []string) {
			startInteractiveMode(c.Root())
		},
	}

	cmd.RegisterCommands(rootCmd)

	// 带参数就单次执行，脚本里可以直接调；不带参数进交互模式
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func startInteractiveMode(rootCmd *cobra.Command) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("weft interactive session - 'help' for commands, 'exit' or 'quit' to leave")
	fmt.Print("weft> ")

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}
		if input == "" {
			fmt.Print("weft> ")
			continue
		}

		if input == "help" {
			rootCmd.Help()
			fmt.Print("weft> ")
			continue
		}

		args := strings.Fields(input)
		matched, _, err := rootCmd.Find(args)
		if err != nil || matched == rootCmd {
			// 不认识的输入透传给 shell，方便顺手 ls/cat
			if err := executeShellCommand(args[0], args[1:]); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			fmt.Print("weft> ")
			continue
		}
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Print("weft> ")
	}
}

func executeShellCommand(cmdName string, cmdArgs []string) error {
	cmd := exec.Command(cmdName, cmdArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
