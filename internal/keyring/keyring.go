// Package keyring stores API credentials as opaque (namespace, name) keyed
// secrets in a JSON file inside the data directory. The store engine has no
// dependency on it; CLI commands open it once per process and pass it by
// reference to whatever needs credentials.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// KeyName identifies a credential as namespace:name, e.g. "shodan:api".
type KeyName struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// ParseKeyName splits "namespace:name". Both parts must be non-empty and
// the namespace must not contain another colon.
func ParseKeyName(s string) (KeyName, error) {
	idx := strings.Index(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return KeyName{}, fmt.Errorf("invalid key name (expected namespace:name): %q", s)
	}
	return KeyName{
		Namespace: s[:idx],
		Name:      s[idx+1:],
	}, nil
}

func (k KeyName) String() string {
	return k.Namespace + ":" + k.Name
}

// Key is a stored credential. The secret is optional: some providers only
// need the access key itself.
type Key struct {
	Name   KeyName
	Secret *string
}

// KeyRing is the file-backed secret store. Safe for concurrent use within
// one process; every mutation is persisted immediately.
type KeyRing struct {
	mu   sync.Mutex
	path string
	// namespace -> name -> optional secret
	keys map[string]map[string]*string
}

// Open loads the keyring at path, creating an empty one if absent.
func Open(path string) (*KeyRing, error) {
	kr := &KeyRing{
		path: path,
		keys: make(map[string]map[string]*string),
	}

	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return kr, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}
	if err := json.Unmarshal(buf, &kr.keys); err != nil {
		return nil, fmt.Errorf("failed to parse keyring: %w", err)
	}
	return kr, nil
}

// Insert adds or replaces a credential and persists the keyring.
func (kr *KeyRing) Insert(key KeyName, secret *string) error {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	ns, ok := kr.keys[key.Namespace]
	if !ok {
		ns = make(map[string]*string)
		kr.keys[key.Namespace] = ns
	}
	ns[key.Name] = secret
	return kr.save()
}

// Get returns the credential, or nil if it doesn't exist.
func (kr *KeyRing) Get(key KeyName) *Key {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	ns, ok := kr.keys[key.Namespace]
	if !ok {
		return nil
	}
	secret, ok := ns[key.Name]
	if !ok {
		return nil
	}
	return &Key{Name: key, Secret: secret}
}

// Delete removes a credential and persists the keyring. Deleting a key that
// doesn't exist is a no-op.
func (kr *KeyRing) Delete(key KeyName) error {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	ns, ok := kr.keys[key.Namespace]
	if !ok {
		return nil
	}
	delete(ns, key.Name)
	if len(ns) == 0 {
		delete(kr.keys, key.Namespace)
	}
	return kr.save()
}

// List returns every key name, sorted.
func (kr *KeyRing) List() []KeyName {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	var out []KeyName
	for ns, names := range kr.keys {
		for name := range names {
			out = append(out, KeyName{Namespace: ns, Name: name})
		}
	}
	sortKeys(out)
	return out
}

// ListFor returns every key name in one namespace, sorted.
func (kr *KeyRing) ListFor(namespace string) []KeyName {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	var out []KeyName
	for name := range kr.keys[namespace] {
		out = append(out, KeyName{Namespace: namespace, Name: name})
	}
	sortKeys(out)
	return out
}

func (kr *KeyRing) save() error {
	buf, err := json.MarshalIndent(kr.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode keyring: %w", err)
	}
	if err := os.WriteFile(kr.path, buf, 0o600); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func sortKeys(keys []KeyName) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Namespace != keys[j].Namespace {
			return keys[i].Namespace < keys[j].Namespace
		}
		return keys[i].Name < keys[j].Name
	})
}
