package rpccodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleMessage struct {
	Name  string
	Count int
}

func TestCodecMarshalUnmarshalRoundTrip(t *testing.T) {
	c := codec{}

	in := &sampleMessage{Name: "peer-1", Count: 3}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out sampleMessage
	require.NoError(t, c.Unmarshal(data, &out))

	assert.Equal(t, *in, out)
}

func TestCodecName(t *testing.T) {
	c := codec{}
	assert.Equal(t, Name, c.Name())
}
