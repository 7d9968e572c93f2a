package telemetry

import (
	"testing"

	"github.com/cuemby/scoutd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotPopulatesIdentityAndBuild(t *testing.T) {
	c := NewCollector(t.TempDir())
	identity := model.HostIdentity{HostID: "host-1", IDC: "idc-1", Location: "us-west"}

	snapshot, err := c.Snapshot(identity)
	require.NoError(t, err)

	assert.Equal(t, identity, snapshot.Identity)
	assert.NotEmpty(t, snapshot.Build.GoVersion)
	assert.NotEmpty(t, snapshot.Build.Platform)
	assert.Equal(t, "idc-1", snapshot.Network.IDC)
	assert.Equal(t, "us-west", snapshot.Network.Location)
}

func TestSnapshotFailsOnUnreadableStorageDir(t *testing.T) {
	c := NewCollector("/nonexistent/path/for/scoutd-tests")

	_, err := c.Snapshot(model.HostIdentity{})
	assert.Error(t, err)
}

func TestHostnameNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, Hostname())
}
