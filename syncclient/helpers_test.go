package syncclient_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagarc03/schedsync"
	schedhttp "github.com/sagarc03/schedsync/http"
	"github.com/sagarc03/schedsync/memory"
	"github.com/sagarc03/schedsync/syncclient"
)

// newGateway starts a real gateway over an in-memory store.
func newGateway(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	handler := schedhttp.NewHandler(&schedhttp.HandlerConfig{}, schedsync.NewService(store))

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)

	return server, store
}

func newClient(t *testing.T, endpoint string) *syncclient.Client {
	t.Helper()

	client, err := syncclient.New(&syncclient.Config{Endpoint: endpoint})
	require.NoError(t, err)
	return client
}
