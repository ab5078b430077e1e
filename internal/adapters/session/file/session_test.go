package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestSessionRejectsInvalidAddresses(t *testing.T) {
	t.Parallel()

	session, err := Open(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		address string
	}{
		{name: "empty", address: ""},
		{name: "whitespace", address: "   "},
		{name: "too short", address: "0x1234"},
		{name: "not hex", address: "0xZZ908400098527886E0F7030069857D2E4169EE7"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.Connect(context.Background(), tc.address)
			require.Error(t, err)
			assert.ErrorContains(t, err, "invalid wallet address")
		})
	}

	_, connected := session.Address()
	assert.False(t, connected)
}

func TestSessionConnectPersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session")
	session, err := Open(path)
	require.NoError(t, err)

	_, connected := session.Address()
	assert.False(t, connected)

	address, err := session.Connect(context.Background(), "  "+testAddress+"\n")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), address)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	got, connected := reopened.Address()
	assert.True(t, connected)
	assert.Equal(t, address, got)
}

func TestSessionDisconnectIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session")
	session, err := Open(path)
	require.NoError(t, err)

	_, err = session.Connect(context.Background(), testAddress)
	require.NoError(t, err)

	require.NoError(t, session.Disconnect(context.Background()))
	require.NoError(t, session.Disconnect(context.Background()))

	_, connected := session.Address()
	assert.False(t, connected)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenRejectsCorruptSession(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("not-an-address"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid address")
}

func TestSessionCanceledContext(t *testing.T) {
	t.Parallel()

	session, err := Open(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = session.Connect(ctx, testAddress)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, session.Disconnect(ctx), context.Canceled)
}
