package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHeader struct {
	Magic       string   `json:"magic"`
	Version     int      `json:"version"`
	Codec       string   `json:"codec"`
	Compression string   `json:"compression"`
	Members     []string `json:"members"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_RoundTrip(t *testing.T) {
	header := testHeader{
		Magic:       "DGSNAP",
		Version:     1,
		Codec:       "go-json",
		Compression: "zstd",
		Members:     []string{"flux", "time", "energy"},
	}
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(header)
			require.NoError(t, err)

			var decoded testHeader
			require.NoError(t, c.Unmarshal(data, &decoded))
			assert.Equal(t, header, decoded)
		})
	}
}

// Both codecs must accept each other's output, since files written with one
// may be opened by a build that defaults to the other.
func TestCodecs_CrossDecode(t *testing.T) {
	header := testHeader{Magic: "DGSNAP", Version: 1, Codec: "json"}

	data := MustMarshal(JSON{}, header)
	var viaGoJSON testHeader
	require.NoError(t, GoJSON{}.Unmarshal(data, &viaGoJSON))
	assert.Equal(t, header, viaGoJSON)

	data = MustMarshal(GoJSON{}, header)
	var viaStdlib testHeader
	require.NoError(t, JSON{}.Unmarshal(data, &viaStdlib))
	assert.Equal(t, header, viaStdlib)
}
