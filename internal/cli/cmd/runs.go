package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"weft/internal/cli/client"
	"weft/internal/common"

	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command (run history)
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List run history or get a run's job details",
		Run:   runRuns,
	}

	cmd.Flags().StringP("uuid", "u", "", "Specific run UUID to inspect")

	return cmd
}

func runRuns(cmd *cobra.Command, args []string) {
	runUUID, err := cmd.Flags().GetString("uuid")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	var path string
	if runUUID != "" {
		path = fmt.Sprintf("/history/%s", runUUID)
	} else {
		path = "/history"
	}

	resp, err := client.SendRequest(http.MethodGet, path, nil)
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

	var runsResp common.Response
	if err := json.Unmarshal(body, &runsResp); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}
	if runsResp.Code != common.SuccessCode {
		fmt.Printf("Query failed: %s\n", runsResp.Message)
		return
	}

	formatted, err := json.MarshalIndent(runsResp.Data, "", "  ")
	if err != nil {
		fmt.Printf("Error: Failed to format output - %v\n", err)
		return
	}

	fmt.Println(string(formatted))
}
