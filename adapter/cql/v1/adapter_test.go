package v1_test

import (
	"context"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyspace/adapter/cql"
	v1 "github.com/arloliu/keyspace/adapter/cql/v1" //nolint:revive // required for v1_test package
	"github.com/arloliu/keyspace/config"
)

func TestAdapterTypesImplementInterfaces(t *testing.T) {
	var _ cql.Session = (*v1.Session)(nil)
	var _ cql.Query = (*v1.Query)(nil)
	var _ cql.Batch = (*v1.Batch)(nil)
	var _ cql.Iter = (*v1.Iter)(nil)
}

func TestBatchTypeConstants(t *testing.T) {
	require.Equal(t, cql.BatchType(gocql.LoggedBatch), cql.LoggedBatch)
	require.Equal(t, cql.BatchType(gocql.UnloggedBatch), cql.UnloggedBatch)
	require.Equal(t, cql.BatchType(gocql.CounterBatch), cql.CounterBatch)
}

func TestConsistencyConversion(t *testing.T) {
	require.Equal(t, gocql.LocalQuorum, v1.ToGocqlConsistency(cql.LocalQuorum))
	require.Equal(t, cql.Quorum, v1.FromGocqlConsistency(gocql.Quorum))
	require.Equal(t, gocql.LocalOne, v1.ToGocqlConsistency(cql.LocalOne))
}

func TestNilIterIsSafe(t *testing.T) {
	iter := &v1.Iter{}

	assert.False(t, iter.Scan())
	assert.False(t, iter.MapScan(map[string]any{}))
	assert.Nil(t, iter.PageState())
	assert.Equal(t, 0, iter.NumRows())
	assert.NoError(t, iter.Close())

	rows, err := iter.SliceMap()
	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestClusterFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hosts = []string{"10.0.0.1", "10.0.0.2"}
	cfg.Port = 19042
	cfg.Username = "svc"
	cfg.Password = "secret"
	cfg.Consistency = "QUORUM"
	cfg.ConnectTimeout = 3 * time.Second

	cluster := v1.ClusterFromConfig(cfg)
	gc := cluster.Config()

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, gc.Hosts)
	assert.Equal(t, 19042, gc.Port)
	assert.Equal(t, gocql.Quorum, gc.Consistency)
	assert.Equal(t, 3*time.Second, gc.ConnectTimeout)
	assert.Equal(t, gocql.PasswordAuthenticator{Username: "svc", Password: "secret"}, gc.Authenticator)
	assert.Empty(t, gc.Keyspace)
}

func TestConnectHonoursCancelledContext(t *testing.T) {
	cluster := v1.NewCluster(gocql.NewCluster("127.0.0.1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := cluster.Connect(ctx, "app_main")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, session)
	assert.Empty(t, cluster.Config().Keyspace, "Connect must not mutate the shared config")
}

func TestUnwrapSessionRejectsForeignSession(t *testing.T) {
	_, ok := v1.UnwrapSession(nil)
	assert.False(t, ok)
}
