package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"weft/internal/cli/client"
	"weft/internal/common"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflows or get specific workflow details",
		Run:   runList,
	}

	cmd.Flags().StringP("name", "n", "", "Specific workflow name to list")

	return cmd
}

func runList(cmd *cobra.Command, args []string) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	var path string
	if name != "" {
		path = fmt.Sprintf("/workflow/%s", name)
	} else {
		path = "/workflow"
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

	var listResp common.Response
	if err := json.Unmarshal(body, &listResp); err != nil {
		fmt.Printf("Error: Failed to parse response - %v\n", err)
		return
	}
	if listResp.Code != common.SuccessCode {
		fmt.Printf("List failed: %s\n", listResp.Message)
		return
	}

	formatted, err := json.MarshalIndent(listResp.Data, "", "  ")
	if err != nil {
		fmt.Printf("Error: Failed to format output - %v\n", err)
		return
	}

	fmt.Println(string(formatted))
}
