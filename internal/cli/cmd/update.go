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

func NewUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a workflow with a new YAML version",
		Run:   runUpdate,
	}

	cmd.Flags().StringP("name", "n", "", "Workflow name to update (required)")
	cmd.Flags().StringP("file", "f", "", "Path to the workflow YAML file (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
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

	resp, err := client.SendFile(http.MethodPost, "/update/"+name, file)
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

	var updateResp common.Response
	if err := json.Unmarshal(body, &updateResp); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	if updateResp.Code != common.SuccessCode {
		fmt.Printf("Update failed: %s\n", updateResp.Message)
		return
	}
	fmt.Println("Workflow updated")
}
