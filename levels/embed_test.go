package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoom(t *testing.T) {
	room, err := LoadRoomFromFS("room.json")
	require.NoError(t, err)
	assert.Equal(t, "studio", room.Name)
	require.NotEmpty(t, room.Planes)
	assert.Equal(t, "floor", room.Planes[0].Name)
}

func TestParseRoomRejectsBadPlanes(t *testing.T) {
	_, err := ParseRoom([]byte(`{"planes":[{"name":"x","size":[1,1],"facing":"down"}]}`))
	assert.ErrorContains(t, err, "facing")

	_, err = ParseRoom([]byte(`{"planes":[{"name":"x","size":[0,1],"facing":"up"}]}`))
	assert.ErrorContains(t, err, "size")

	_, err = ParseRoom([]byte(`{`))
	assert.Error(t, err)
}
