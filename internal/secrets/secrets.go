package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// lightweight per-user token store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but keeps the session token out of
// plain-text config.

const fileName = "tokens.json"

// SessionToken is the name under which the API session token is stored.
const SessionToken = "session"

type tokenFile struct {
	Tokens map[string]string `json:"tokens"` // name -> base64(ciphertext)
}

func Store(name, token string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("name required")
	}
	path, err := filePath()
	if err != nil {
		return err
	}
	tf, _ := load(path)
	if tf.Tokens == nil {
		tf.Tokens = map[string]string{}
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	tf.Tokens[name] = base64.StdEncoding.EncodeToString(ct)
	return save(path, tf)
}

func Fetch(name string) (string, error) {
	if name = norm(name); name == "" {
		return "", fmt.Errorf("name required")
	}
	path, err := filePath()
	if err != nil {
		return "", err
	}
	tf, err := load(path)
	if err != nil {
		return "", err
	}
	enc, ok := tf.Tokens[name]
	if !ok {
		return "", fmt.Errorf("token not found")
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

func Delete(name string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("name required")
	}
	path, err := filePath()
	if err != nil {
		return err
	}
	tf, err := load(path)
	if err != nil {
		return err
	}
	delete(tf.Tokens, name)
	return save(path, tf)
}

func filePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "ellim-community")
	if err := os.MkdirAll(dir, 0o700); err != nil { // restrict directory
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func load(path string) (tokenFile, error) {
	var tf tokenFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tokenFile{}, nil
		}
		return tf, err
	}
	if err := json.Unmarshal(data, &tf); err != nil {
		return tf, err
	}
	return tf, nil
}

func save(path string, tf tokenFile) error {
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func masterKey() ([]byte, error) {
	user := os.Getenv("USER")
	base := fmt.Sprintf("ellim-community-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:], nil
}

func encrypt(plain []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
