package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultProfile names the credential used when none is given
const DefaultProfile = "default"

// Credential is a stored Pexels API key
type Credential struct {
	Profile      string    `json:"profile"`
	APIKey       string    `json:"api_key"`
	LastModified time.Time `json:"last_modified"`
}

// Source names the store a key was resolved from
type Source string

const (
	SourceFlag        Source = "flag"
	SourceConfig      Source = "config"
	SourceEnvironment Source = "environment"
	SourceKeyring     Source = "keyring"
)

// CredentialStore is the interface for storing and retrieving API keys
type CredentialStore interface {
	// Store saves the credential under its profile
	Store(cred *Credential) error

	// Retrieve gets the credential for a profile
	Retrieve(profile string) (*Credential, error)

	// Delete removes the credential for a profile
	Delete(profile string) error

	// Exists checks if a credential exists for a profile
	Exists(profile string) bool

	// Name identifies the store in status output
	Name() Source
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager uses the environment first, then the system keychain when
// one is available
func NewManager() *Manager {
	stores := []CredentialStore{NewEnvironmentStore()}

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	return &Manager{stores: stores}
}

// NewManagerWithStores creates a Manager over the given stores, consulted in order
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the key in the first store that accepts it
func (m *Manager) Store(cred *Credential) error {
	if cred == nil || strings.TrimSpace(cred.APIKey) == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidCredentials)
	}
	if cred.Profile == "" {
		cred.Profile = DefaultProfile
	}
	cred.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		err := store.Store(cred)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve gets the credential from the first store that has it
func (m *Manager) Retrieve(profile string) (*Credential, Source, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	for _, store := range m.stores {
		if cred, err := store.Retrieve(profile); err == nil && cred != nil {
			return cred, store.Name(), nil
		}
	}
	return nil, "", fmt.Errorf("%w for profile %q", ErrCredentialsNotFound, profile)
}

// Resolve returns explicit when set, otherwise the stored key for profile
func (m *Manager) Resolve(explicit, profile string) (string, Source, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, SourceConfig, nil
	}
	cred, source, err := m.Retrieve(profile)
	if err != nil {
		return "", "", err
	}
	return cred.APIKey, source, nil
}

// Delete removes the credential from every store that holds it
func (m *Manager) Delete(profile string) error {
	if profile == "" {
		profile = DefaultProfile
	}

	var deleted bool
	var lastErr error
	for _, store := range m.stores {
		if !store.Exists(profile) {
			continue
		}
		if err := store.Delete(profile); err == nil {
			deleted = true
		} else {
			lastErr = err
		}
	}

	if !deleted && lastErr != nil {
		return fmt.Errorf("failed to delete credentials: %w", lastErr)
	}
	if !deleted {
		return fmt.Errorf("%w for profile %q", ErrCredentialsNotFound, profile)
	}
	return nil
}

// StoreStatus reports whether one store holds a key for a profile
type StoreStatus struct {
	Source  Source
	Present bool
}

// Status reports, in lookup order, which stores hold a key for profile
func (m *Manager) Status(profile string) []StoreStatus {
	if profile == "" {
		profile = DefaultProfile
	}
	status := make([]StoreStatus, 0, len(m.stores))
	for _, store := range m.stores {
		status = append(status, StoreStatus{Source: store.Name(), Present: store.Exists(profile)})
	}
	return status
}

// Masked returns a copy of the credential with the key masked
func (c *Credential) Masked() *Credential {
	if c == nil {
		return nil
	}
	return &Credential{
		Profile:      c.Profile,
		APIKey:       maskString(c.APIKey),
		LastModified: c.LastModified,
	}
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
