package logger

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

// secretKeyParts mark a key whose value is never logged.
var secretKeyParts = []string{"password", "secret", "token", "authorization", "api_key", "credentials"}

var (
	redactOnce sync.Once
	redactOn   bool
)

// redactionEnabled reads LOG_REDACTION_ENABLED once; only an explicit
// false-like value turns redaction off.
func redactionEnabled() bool {
	redactOnce.Do(func() {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			redactOn = false
		default:
			redactOn = true
		}
	})
	return redactOn
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !redactionEnabled() {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		name := stringify(kv[i])
		out = append(out, name, redactValue(strings.ToLower(name), kv[i+1]))
	}
	if len(kv)%2 == 1 {
		out = append(out, kv[len(kv)-1])
	}
	return out
}

func redactValue(key string, val interface{}) interface{} {
	switch {
	case key == "":
		return val
	case isSecretKey(key):
		return redacted
	case isConnKey(key):
		return redactDSN(stringify(val))
	}
	return val
}

func isSecretKey(key string) bool {
	for _, part := range secretKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func isConnKey(key string) bool {
	return key == "dsn" || strings.HasSuffix(key, "_dsn") || strings.HasSuffix(key, "_url")
}

// redactDSN masks the password of URL-shaped connection strings.
func redactDSN(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return string(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
