package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// TokenSource yields bearer tokens for Graph.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// refreshMargin renews a cached token this long before it expires.
const refreshMargin = 2 * time.Minute

// CredentialTokens adapts an azcore.TokenCredential to TokenSource and caches
// the token until shortly before expiry.
type CredentialTokens struct {
	cred  azcore.TokenCredential
	scope string

	mu     sync.Mutex
	cached azcore.AccessToken
}

// NewCredentialTokens wraps cred for the given scope.
func NewCredentialTokens(cred azcore.TokenCredential, scope string) *CredentialTokens {
	return &CredentialTokens{cred: cred, scope: scope}
}

// NewAzureCLITokens uses the session of a previously run `az login`.
// The provisioner never performs an interactive login itself.
func NewAzureCLITokens(tenantID, scope string) (*CredentialTokens, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("azure cli credential: %w", err)
	}
	return NewCredentialTokens(cred, scope), nil
}

// Token returns a cached token or requests a new one.
func (t *CredentialTokens) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cached.Token != "" && time.Until(t.cached.ExpiresOn) > refreshMargin {
		return t.cached.Token, nil
	}

	tok, err := t.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{t.scope}})
	if err != nil {
		return "", err
	}
	t.cached = tok
	return tok.Token, nil
}

// StaticToken is a fixed bearer token, for tests and pre-issued tokens.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty static token")
	}
	return string(s), nil
}

var (
	_ TokenSource = (*CredentialTokens)(nil)
	_ TokenSource = StaticToken("")
)
