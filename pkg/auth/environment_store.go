package auth

import (
	"os"
	"time"
)

// APIKeyEnv is the environment variable holding the API key
const APIKeyEnv = "PEXELS_API_KEY"

// EnvironmentStore reads the API key from the environment. It is read-only
// and serves every profile.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve gets the key from PEXELS_API_KEY
func (e *EnvironmentStore) Retrieve(profile string) (*Credential, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, ErrCredentialsNotFound
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return &Credential{Profile: profile, APIKey: key, LastModified: time.Now()}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(profile string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment variable is set
func (e *EnvironmentStore) Exists(profile string) bool {
	return os.Getenv(APIKeyEnv) != ""
}

// Name identifies the store
func (e *EnvironmentStore) Name() Source { return SourceEnvironment }
