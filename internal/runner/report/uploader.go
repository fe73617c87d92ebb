package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
	"weft/pkg/workflow"
)

// Uploader 把作业产出的覆盖率文件转发给外部聚合服务。
// 上传失败由调用方决定是否致命（默认只告警）。
type Uploader struct {
	endpoint string
	client   *http.Client
}

func NewUploader(endpoint string) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (u *Uploader) Upload(ctx context.Context, artifactPath string, spec *workflow.ReportSpec, token string) error {
	file, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("open coverage artifact: %w", err)
	}
	defer file.Close()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", spec.Coverage)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if spec.Flag != "" {
		writer.WriteField("flags", spec.Flag)
	}
	if spec.Name != "" {
		writer.WriteField("name", spec.Name)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("upload rejected: %s: %s", resp.Status, string(respBody))
	}
	return nil
}
