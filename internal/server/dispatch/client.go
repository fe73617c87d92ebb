package dispatch

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"weft/pkg/jobrpc"
)

type Client struct {
	rpcClient *rpc.Client
}

func NewClient(runnerRPCAddr string) (*Client, error) {
	conn, err := net.Dial("tcp", runnerRPCAddr)
	if err != nil {
		return nil, err
	}
	return &Client{
		rpcClient: jsonrpc.NewClient(conn),
	}, nil
}

func (c *Client) ExecuteRun(req *jobrpc.ExecuteRunRequest) (*jobrpc.ExecuteRunResponse, error) {
	var resp jobrpc.ExecuteRunResponse
	err := c.rpcClient.Call("JobRunnerService.ExecuteRun", req, &resp)
	return &resp, err
}
