package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactionMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewRedactionMiddleware([]string{"^caesar-decrypt-"})
	require.NoError(t, err)
	store := mw(underlying)
	ctx := context.Background()

	secret := newRecord("dec", "caesar-decrypt-3", "KHOOR", "HELLO")
	public := newRecord("enc", "caesar-encrypt-3", "HELLO", "KHOOR")
	require.NoError(t, store.Save(ctx, secret))
	require.NoError(t, store.Save(ctx, public))

	assert.Equal(t, "KHOOR", secret.Input, "caller's record must not change")

	loaded, err := store.Load(ctx, "dec")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.Input)
	assert.Equal(t, middleware.Mask, loaded.Result.Output)
	assert.Equal(t, 6, loaded.Result.Steps)

	loaded, err = store.Load(ctx, "enc")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", loaded.Input)
	assert.Equal(t, "KHOOR", loaded.Result.Output)
}

func TestRedactionMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactionMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestWrap_Contract(t *testing.T) {
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	redact, err := middleware.NewRedactionMiddleware([]string{"^never$"})
	require.NoError(t, err)

	ports.RunStoreContract(t, middleware.Wrap(memory.NewStore(), redact, enc))
}
