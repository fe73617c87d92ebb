package common

import (
	"os"
	"strings"
)

// SecretStore 启动时从环境变量加载一次，只读。
// 密钥值只在内存中传递，不落库，也不允许出现在日志里。
type SecretStore struct {
	values map[string]string
}

const secretEnvPrefix = "WEFT_SECRET_"

// LoadSecrets reads every WEFT_SECRET_<NAME> environment variable into the
// store, keyed by <NAME>.
func LoadSecrets() *SecretStore {
	values := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, secretEnvPrefix) {
			continue
		}
		values[strings.TrimPrefix(name, secretEnvPrefix)] = value
	}
	return &SecretStore{values: values}
}

func (s *SecretStore) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}
