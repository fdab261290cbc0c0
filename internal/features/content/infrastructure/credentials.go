package infrastructure

import (
	"os"
	"strings"

	"postcraft/backend/internal/features/content/domain"
)

// CredentialResolver picks the API key for a platform from its credential
// group. Secrets are read on every call so they can rotate without a restart.
type CredentialResolver struct {
	lookup func(string) string
}

// NewCredentialResolver creates a resolver reading secrets through lookup,
// or from the process environment when lookup is nil.
func NewCredentialResolver(lookup func(string) string) *CredentialResolver {
	if lookup == nil {
		lookup = os.Getenv
	}
	return &CredentialResolver{lookup: lookup}
}

// Resolve returns the secret of the platform's credential group.
func (r *CredentialResolver) Resolve(platform string) (string, error) {
	group, ok := domain.GroupFor(strings.ToLower(platform))
	if !ok {
		aliases := domain.PlatformAliases()
		names := make([]string, len(aliases))
		for i, pa := range aliases {
			names[i] = pa.Alias
		}
		return "", domain.Newf(domain.ErrUnsupportedPlatform,
			"Unsupported platform: %s. Available platforms: %s", platform, strings.Join(names, ", "))
	}

	apiKey := r.lookup(string(group))
	if apiKey == "" {
		return "", domain.Newf(domain.ErrMissingCredential,
			"API key %s not found in environment variables for platform %s", group, platform)
	}
	return apiKey, nil
}

// Lookup returns a named secret, failing when it is unset.
func (r *CredentialResolver) Lookup(name string) (string, error) {
	secret := r.lookup(name)
	if secret == "" {
		return "", domain.Newf(domain.ErrMissingCredential,
			"API key %s not found in environment variables", name)
	}
	return secret, nil
}

// Groups returns the alias table as alias to credential group name. Secrets
// are never included.
func (r *CredentialResolver) Groups() map[string]string {
	out := make(map[string]string)
	for _, pa := range domain.PlatformAliases() {
		out[pa.Alias] = string(pa.Group)
	}
	return out
}
