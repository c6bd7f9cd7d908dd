// Package credentials assembles and validates the Google service-account
// credential used by the sheet sink.
//
// Credentials can come from several places. Resolve tries each Source in
// order and returns the first one that is both complete and valid.
package credentials

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// ServiceAccountType is the only credential type the sink accepts.
const ServiceAccountType = "service_account"

// ErrNotFound is returned by a Source that has nothing configured.
var ErrNotFound = errors.New("credentials not configured")

// ServiceAccount mirrors the JSON key file issued for a Google service account.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id,omitempty"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id,omitempty"`
	AuthURI                 string `json:"auth_uri,omitempty"`
	TokenURI                string `json:"token_uri,omitempty"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url,omitempty"`
	ClientX509CertURL       string `json:"client_x509_cert_url,omitempty"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// Validate checks required fields and that the private key parses.
func (sa *ServiceAccount) Validate() error {
	var missing []string
	if sa.Type == "" {
		missing = append(missing, "type")
	}
	if sa.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if sa.Type != ServiceAccountType {
		return fmt.Errorf("type %q is not %q", sa.Type, ServiceAccountType)
	}
	if !strings.Contains(sa.ClientEmail, "@") {
		return fmt.Errorf("client_email %q is not an email address", sa.ClientEmail)
	}
	if _, err := ParsePrivateKey([]byte(sa.PrivateKey)); err != nil {
		return fmt.Errorf("private_key: %w", err)
	}
	return nil
}

// JSON returns the key file encoding, suitable for oauth2/google.
func (sa *ServiceAccount) JSON() ([]byte, error) {
	return json.Marshal(sa)
}

// ParsePrivateKey decodes an RSA private key from PEM data.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	// Try PKCS#8 first (what Google issues)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	// Fall back to PKCS#1 (older format)
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return rsaKey, nil
}

// unescapeKey turns literal "\n" sequences, common when a PEM is pasted into
// a single-line environment variable, into newlines.
func unescapeKey(key string) string {
	if strings.Contains(key, `\n`) {
		return strings.ReplaceAll(key, `\n`, "\n")
	}
	return key
}
