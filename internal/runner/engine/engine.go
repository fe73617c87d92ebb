package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"go.uber.org/zap"
)

// StepRequest 一步的执行参数：镜像由 os 轴决定，工作目录按作业隔离，
// 环境变量里带着轴值（MATRIX_*）
type StepRequest struct {
	Image     string
	Command   string
	Env       map[string]string
	Workspace string // 宿主机目录，挂载到容器 /workspace
}

type StepResult struct {
	Status string // success/failed
	Stdout string
	Stderr string
}

type DockerEngine struct {
	cli         *client.Client
	stepTimeout time.Duration
	logger      *zap.Logger
}

func NewDockerEngine(dockerHost string, stepTimeout time.Duration, logger *zap.Logger) (*DockerEngine, error) {
	cli, err := client.NewClientWithOpts(
		client.WithHost(dockerHost),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, err
	}
	return &DockerEngine{cli: cli, stepTimeout: stepTimeout, logger: logger}, nil
}

// ExecuteStep runs one step in a fresh container and blocks until it exits.
// The passed context carries fail-fast cancellation; a per-step timeout is
// layered on top of it.
func (d *DockerEngine) ExecuteStep(ctx context.Context, req StepRequest) (StepResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.stepTimeout)
	defer cancel()

	result := StepResult{}
	resp, err := d.cli.ContainerCreate(
		ctx,
		&container.Config{
			Image:      req.Image,
			Cmd:        []string{"sh", "-c", req.Command},
			Env:        envList(req.Env),
			WorkingDir: "/workspace",
		},
		&container.HostConfig{
			Binds: []string{req.Workspace + ":/workspace"},
		},
		nil, nil, "",
	)
	if err != nil {
		return result, err
	}
	containerID := resp.ID

	defer func() {
		// 删除用独立 ctx，避免 run 被取消后容器清不掉
		removeCtx, removeCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer removeCancel()
		err := d.cli.ContainerRemove(removeCtx, containerID, container.RemoveOptions{Force: true})
		if err != nil {
			d.logger.Warn("fail to remove container",
				zap.String("container_id", containerID), zap.Error(err))
		}
	}()

	if err := d.cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return result, errors.New("fail to start container")
	}

	statusCh, errCh := d.cli.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return result, err
		}
	case status := <-statusCh:
		if status.StatusCode != 0 {
			result.Status = "failed"
		} else {
			result.Status = "success"
		}
	}

	out, err := d.cli.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return result, fmt.Errorf("fail to get container logs: %v", err)
	}

	result.Stdout, result.Stderr, err = drainLogs(out)
	if err != nil {
		return result, err
	}
	return result, nil
}

// drainLogs 解复用容器日志流并关闭它
func drainLogs(out io.ReadCloser) (string, string, error) {
	defer out.Close()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	if _, err := stdcopy.StdCopy(stdout, stderr, out); err != nil {
		return "", "", fmt.Errorf("fail to copy container logs: %v", err)
	}
	return stdout.String(), stderr.String(), nil
}

func envList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}
