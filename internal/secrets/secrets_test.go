package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	values map[string]string
	calls  map[string]int
}

func (f *fakeFetcher) GetSecret(_ context.Context, name string, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.calls[name]++
	v, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, errors.New("SecretNotFound")
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &v}}, nil
}

func newFake(values map[string]string) *fakeFetcher {
	return &fakeFetcher{values: values, calls: map[string]int{}}
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "staging"))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("CALC_TEST_SECRET", "s3cret")

	p, err := NewProvider(&ProviderConfig{Source: SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsVaultEnabled())

	v, err := p.GetSecret(context.Background(), "CALC_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	_, err = p.GetSecret(context.Background(), "CALC_TEST_MISSING")
	assert.Error(t, err)
}

func TestProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault, Environment: "production"}, zap.NewNop())
	assert.Error(t, err)
}

func TestProvider_GetSecretOrEnvPrefersEnvironment(t *testing.T) {
	fake := newFake(map[string]string{"admin-api-key": "from-vault"})
	p := &Provider{
		source: SourceVault,
		vault:  newVaultClient(fake, &VaultConfig{VaultName: "kv"}, zap.NewNop()),
		logger: zap.NewNop(),
	}

	v, err := p.GetSecretOrEnv(context.Background(), "admin-api-key", "CALC_TEST_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-vault", v)

	t.Setenv("CALC_TEST_API_KEY", "from-env")
	v, err = p.GetSecretOrEnv(context.Background(), "admin-api-key", "CALC_TEST_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}

func TestVaultClient_CachesUntilExpiry(t *testing.T) {
	fake := newFake(map[string]string{"jwt-signing-key": "k1"})
	vc := newVaultClient(fake, &VaultConfig{VaultName: "kv", CacheEnabled: true, CacheTTL: time.Minute}, zap.NewNop())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	vc.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		v, err := vc.GetSecret(context.Background(), "jwt-signing-key")
		require.NoError(t, err)
		assert.Equal(t, "k1", v)
	}
	assert.Equal(t, 1, fake.calls["jwt-signing-key"])

	now = now.Add(2 * time.Minute)
	_, err := vc.GetSecret(context.Background(), "jwt-signing-key")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls["jwt-signing-key"])

	vc.ClearCache()
	_, err = vc.GetSecret(context.Background(), "jwt-signing-key")
	require.NoError(t, err)
	assert.Equal(t, 3, fake.calls["jwt-signing-key"])
}

func TestVaultClient_NoCache(t *testing.T) {
	fake := newFake(map[string]string{"a": "1"})
	vc := newVaultClient(fake, &VaultConfig{VaultName: "kv"}, zap.NewNop())

	_, _ = vc.GetSecret(context.Background(), "a")
	_, _ = vc.GetSecret(context.Background(), "a")
	assert.Equal(t, 2, fake.calls["a"])

	_, err := vc.GetSecret(context.Background(), "missing")
	assert.Error(t, err)
}
