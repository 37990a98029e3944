package notify_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/notify"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

func TestLogNotifier_RegistraMensaje(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.New(logger.Config{Env: "production", Level: "info", Out: &buf}))

	err := &cart.OpError{Op: cart.OpRemove, Kind: cart.KindNotInCart, ProductID: 3, Err: cart.ErrNotInCart}
	require.True(t, cart.Notify(n, err))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, cart.MsgRemoveFailed, entry["notification"])
	assert.Equal(t, "cart_notifier", entry["component"])
}

func TestNotify_ErrorAjenoNoNotifica(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.New(logger.Config{Out: &buf}))

	assert.False(t, cart.Notify(n, errors.New("otro")))
	assert.False(t, cart.Notify(n, nil))
	assert.Zero(t, buf.Len())
}
