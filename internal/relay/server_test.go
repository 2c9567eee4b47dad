package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zoubayerBS/myrepository-sub000/internal/config"
	"github.com/zoubayerBS/myrepository-sub000/internal/stats"
	"github.com/zoubayerBS/myrepository-sub000/internal/testutil"
)

func newTestRelayServer(t *testing.T, su *stats.MockStatsUpdater) *RelayServer {
	t.Helper()

	su.On("RegisterMetric", "NumActiveConnections").Once()

	return NewRelayServer(testutil.TestLogger(t), NewRegistry(), nil, su, &config.Config{
		RelayAddr:      "localhost:8001",
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func TestNewRelayServer(t *testing.T) {
	su := &stats.MockStatsUpdater{}
	defer su.AssertExpectations(t)

	srv := newTestRelayServer(t, su)

	assert.Equal(t, "localhost:8001", srv.mux.Addr)
	assert.NotNil(t, srv.registry)
	assert.Empty(t, srv.clients)
}

func TestAddRemoveClient(t *testing.T) {
	su := &stats.MockStatsUpdater{}
	defer su.AssertExpectations(t)
	su.On("Incr", "NumActiveConnections").Once()
	su.On("Decr", "NumActiveConnections").Once()

	srv := newTestRelayServer(t, su)

	c := &Client{}
	srv.addClient(c)
	assert.Contains(t, srv.clients, c)

	srv.removeClient(c)
	assert.NotContains(t, srv.clients, c)

	// removing an unknown client must not decrement again
	srv.removeClient(c)
}

func TestRelayServerShutdown(t *testing.T) {
	su := &stats.MockStatsUpdater{}
	defer su.AssertExpectations(t)

	srv := newTestRelayServer(t, su)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
