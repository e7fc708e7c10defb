// internal/infra/secrets/provider.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "google.golang.org/genproto/googleapis/cloud/secretmanager/v1"
)

var (
	ErrNotConfigured  = errors.New("secrets: not configured")
	ErrSecretNotFound = errors.New("secrets: secret not found")
)

// Provider resolves secret values (API keys, DSNs) from Secret Manager.
type Provider struct {
	Client    *secretmanager.Client
	ProjectID string
}

func NewProvider(ctx context.Context, projectID string) (*Provider, error) {
	pid := strings.TrimSpace(projectID)
	if pid == "" {
		pid = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}
	if pid == "" {
		pid = strings.TrimSpace(os.Getenv("GCP_PROJECT"))
	}
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrNotConfigured)
	}

	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &Provider{Client: c, ProjectID: pid}, nil
}

// Get returns the latest version of the named secret. name may be either a
// bare secret id (resolved inside ProjectID) or a full
// "projects/.../secrets/.../versions/..." resource name.
func (p *Provider) Get(ctx context.Context, name string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrNotConfigured
	}

	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("%w: secret name is empty", ErrNotConfigured)
	}
	if !strings.HasPrefix(n, "projects/") {
		n = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, n)
	}

	res, err := p.Client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: n})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSecretNotFound, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrSecretNotFound
	}

	s := strings.TrimSpace(string(res.Payload.Data))
	if s == "" {
		return "", ErrSecretNotFound
	}
	return s, nil
}

func (p *Provider) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
