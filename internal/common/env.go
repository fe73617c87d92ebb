package common

import (
	"os"
	"strconv"
)

// Config 应用配置结构体，全部来自环境变量，进程启动时初始化一次，只读
type Config struct {
	AppEnv     string // 环境（如production）
	DBHost     string // 数据库主机
	DBPort     int    // 数据库端口
	DBUser     string // 数据库用户名
	DBPassword string // 数据库密码
	DBName     string // 数据库名
	RedisAddr  string // Redis地址（格式：host:port）
	LogPath    string // 日志文件路径
	KeyPath    string // 密钥文件路径
	CertPath   string // 证书文件路径

	RunnerAddr   string // runner 的 RPC 地址
	CallbackAddr string // 服务端回调 RPC 监听地址
	ReportURL    string // 覆盖率上报服务地址
	DockerHost   string // docker daemon 地址
	DefaultImage string // 未配置 os 轴镜像时的兜底镜像
	StepTimeout  int    // 单步超时（分钟）
}

var config Config

func GetConfig() Config {
	return config
}

func InitConf() {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "3306"))
	stepTimeout, _ := strconv.Atoi(getEnv("STEP_TIMEOUT_MINUTES", "10"))

	config = Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", ""), // 无默认值，必须在环境变量中配置
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "weft"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		LogPath:    getEnv("LOG_PATH", "./logs/weft.log"),
		KeyPath:    getEnv("KEY_PATH", ""),
		CertPath:   getEnv("CERT_PATH", ""),

		RunnerAddr:   getEnv("RUNNER_ADDR", "localhost:8081"),
		CallbackAddr: getEnv("CALLBACK_ADDR", "localhost:8082"),
		ReportURL:    getEnv("REPORT_URL", "https://coverage.example.com/upload"),
		DockerHost:   getEnv("DOCKER_HOST", "unix:///var/run/docker.sock"),
		DefaultImage: getEnv("DEFAULT_IMAGE", "alpine:3.17"),
		StepTimeout:  stepTimeout,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
