package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"weft/internal/cli/client"
	"weft/internal/common"

	"github.com/spf13/cobra"
)

func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow from a YAML file",
		Run:   runCreate,
	}

	cmd.Flags().StringP("file", "f", "", "Path to the workflow YAML file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Printf("Error: Failed to open file - %v\n", err)
		return
	}
	defer file.Close()

	resp, err := client.SendFile(http.MethodPost, "/create", file)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var createResp common.Response
	if err := json.Unmarshal(body, &createResp); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	if createResp.Code != common.SuccessCode {
		fmt.Printf("Create failed: %s\n", createResp.Message)
		return
	}
	fmt.Println("Workflow created")
}
