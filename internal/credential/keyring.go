package credential

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "adminpanel"

// jwtSecretKey is the keyring entry holding the auth backend signing secret.
const jwtSecretKey = "authmock.jwt_secret"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/adminpanel/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("adminpanel-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// JWTSecret returns the signing secret of the auth backend, generating and
// storing a random one on first use.
func JWTSecret() ([]byte, error) {
	secret, err := Get(jwtSecretKey)
	if err == nil && secret != "" {
		return []byte(secret), nil
	}
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	secret = hex.EncodeToString(buf)

	if err := Set(jwtSecretKey, secret); err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

// ResetJWTSecret forgets the stored signing secret. Tokens issued with it
// stop validating once a new secret is generated.
func ResetJWTSecret() error {
	err := Delete(jwtSecretKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
