package chatclient

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IdentityProvider 提供发送端的稳定匿名身份，随 X-User-Id 头上报。
// 作为构造参数注入而不是读取环境全局，便于在无浏览器环境下测试。
type IdentityProvider interface {
	UserID() (string, error)
}

// StaticIdentity 固定返回同一个身份。
type StaticIdentity string

func (s StaticIdentity) UserID() (string, error) {
	return string(s), nil
}

// FileIdentity 把首次生成的身份写进文件，同一设备跨进程保持同一身份。
type FileIdentity struct {
	Path string

	mu     sync.Mutex
	cached string
}

func (f *FileIdentity) UserID() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != "" {
		return f.cached, nil
	}

	data, err := os.ReadFile(f.Path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			f.cached = id
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id := "user_" + uuid.NewString()
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(f.Path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	f.cached = id
	return id, nil
}
