package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source yields a ServiceAccount from one configuration location.
// Load returns ErrNotFound when the location is not configured at all.
type Source interface {
	Name() string
	Load() (*ServiceAccount, error)
}

// JSONEnv reads a whole key file from one environment variable.
type JSONEnv struct {
	Var string
}

func (s JSONEnv) Name() string { return "env:" + s.Var }

func (s JSONEnv) Load() (*ServiceAccount, error) {
	raw := strings.TrimSpace(os.Getenv(s.Var))
	if raw == "" {
		return nil, ErrNotFound
	}
	var sa ServiceAccount
	if err := json.Unmarshal([]byte(raw), &sa); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Var, err)
	}
	sa.PrivateKey = unescapeKey(sa.PrivateKey)
	return &sa, nil
}

// FieldsEnv assembles a key file from one variable per field, named
// Prefix + upper-cased JSON field (GOOGLE_PROJECT_ID, GOOGLE_PRIVATE_KEY, ...).
type FieldsEnv struct {
	Prefix string
}

func (s FieldsEnv) Name() string { return "env:" + s.Prefix + "*" }

func (s FieldsEnv) Load() (*ServiceAccount, error) {
	get := func(field string) string {
		return strings.TrimSpace(os.Getenv(s.Prefix + field))
	}

	sa := ServiceAccount{
		Type:                    get("TYPE"),
		ProjectID:               get("PROJECT_ID"),
		PrivateKeyID:            get("PRIVATE_KEY_ID"),
		PrivateKey:              unescapeKey(get("PRIVATE_KEY")),
		ClientEmail:             get("CLIENT_EMAIL"),
		ClientID:                get("CLIENT_ID"),
		AuthURI:                 get("AUTH_URI"),
		TokenURI:                get("TOKEN_URI"),
		AuthProviderX509CertURL: get("AUTH_PROVIDER_X509_CERT_URL"),
		ClientX509CertURL:       get("CLIENT_X509_CERT_URL"),
		UniverseDomain:          get("UNIVERSE_DOMAIN"),
	}
	if sa == (ServiceAccount{}) {
		return nil, ErrNotFound
	}
	if sa.Type == "" {
		sa.Type = ServiceAccountType
	}
	return &sa, nil
}

// File reads a key file whose path is held in an environment variable.
type File struct {
	PathVar string
}

func (s File) Name() string { return "file:$" + s.PathVar }

func (s File) Load() (*ServiceAccount, error) {
	path := strings.TrimSpace(os.Getenv(s.PathVar))
	if path == "" {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &sa, nil
}

// DefaultSources lists the supported locations in priority order.
func DefaultSources() []Source {
	return []Source{
		JSONEnv{Var: "SERVICE_ACCOUNT_JSON"},
		FieldsEnv{Prefix: "GOOGLE_"},
		File{PathVar: "GOOGLE_APPLICATION_CREDENTIALS"},
	}
}

// Resolve returns the first credential that loads and validates. When none
// does, the error lists why each configured source was rejected.
func Resolve(sources ...Source) (*ServiceAccount, error) {
	if len(sources) == 0 {
		sources = DefaultSources()
	}

	var errs []error
	for _, src := range sources {
		sa, err := src.Load()
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if err := sa.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		return sa, nil
	}

	if len(errs) == 0 {
		return nil, ErrNotFound
	}
	return nil, errors.Join(errs...)
}
