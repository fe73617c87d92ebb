package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"weft/internal/cli/client"
	"weft/internal/common"
	"weft/pkg/api"

	"github.com/spf13/cobra"
)

// NewTriggerCommand creates the trigger command
func NewTriggerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Trigger a workflow run",
		Run:   runTrigger,
	}

	cmd.Flags().StringP("name", "n", "", "Workflow name to trigger (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runTrigger(cmd *cobra.Command, args []string) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	req := api.TriggerRequest{
		WorkflowName: name,
	}
	jsonData, err := json.Marshal(req)
	if err != nil {
		fmt.Printf("Error: Failed to serialize data - %v\n", err)
		return
	}

	resp, err := client.SendRequest(http.MethodPost, "/trigger", bytes.NewBuffer(jsonData))
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

	var triggerResp common.Response
	if err := json.Unmarshal(body, &triggerResp); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}

	if triggerResp.Code != common.SuccessCode {
		fmt.Printf("Trigger failed: %s\n", triggerResp.Message)
		return
	}

	dataBytes, err := json.Marshal(triggerResp.Data)
	if err != nil {
		fmt.Printf("Error: Failed to parse response data - %v\n", err)
		return
	}
	var triggerData api.TriggerResponse
	if err := json.Unmarshal(dataBytes, &triggerData); err != nil {
		fmt.Printf("Error: Failed to parse response data - %v\n", err)
		return
	}

	fmt.Printf("Triggered run %s with %d jobs\n", triggerData.RunUUID, triggerData.JobCount)
}
