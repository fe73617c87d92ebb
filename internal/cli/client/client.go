package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var (
	token      string
	serverURL  = "https://localhost:8080"
	caCertPath string
)

func init() {
	if envURL := os.Getenv("WEFT_SERVER_URL"); envURL != "" {
		serverURL = envURL
	}
	if envCaPath := os.Getenv("CA_CERT_PATH"); envCaPath != "" {
		caCertPath = envCaPath
	}
	token = loadToken()
}

// SaveToken 登录成功后把令牌落到文件，单次执行模式下
// 后续调用才能带上认证
func SaveToken(t string) {
	token = t
	path, err := tokenFilePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		fmt.Printf("fail to persist token: %v\n", err)
		return
	}
	if err := os.WriteFile(path, []byte(t), 0o600); err != nil {
		fmt.Printf("fail to persist token: %v\n", err)
	}
}

func loadToken() string {
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func tokenFilePath() (string, error) {
	if env := os.Getenv("WEFT_TOKEN_FILE"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".weft", "token"), nil
}

func SendRequest(method, path string, body io.Reader) (*http.Response, error) {
	req, err := CreateRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	return DoRequest(req)
}

// SendFile 提交 YAML 工作流定义
func SendFile(method, path string, file io.Reader) (*http.Response, error) {
	req, err := CreateRequest(method, path, file)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/yaml")
	return DoRequest(req)
}

func CreateRequest(method, path string, body io.Reader) (*http.Request, error) {
	url := serverURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func DoRequest(req *http.Request) (*http.Response, error) {
	client := &http.Client{
		Transport: createTLSConfig(),
	}
	return client.Do(req)
}

func createTLSConfig() *http.Transport {
	tlsConfig := &tls.Config{}

	if caCertPath != "" {
		caCert, err := os.ReadFile(caCertPath)
		if err != nil {
			fmt.Printf("fail to read ca cert: %v\n", err)
		} else {
			caCertPool := x509.NewCertPool()
			if caCertPool.AppendCertsFromPEM(caCert) {
				tlsConfig.RootCAs = caCertPool
			} else {
				fmt.Println("fail to parse ca cert, use system default cert pool")
			}
		}
	}
	return &http.Transport{
		TLSClientConfig: tlsConfig,
	}
}

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if resp.Body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}
