package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-cool/naturalist/internal/model"
)

func TestCSV_EmptyCollection(t *testing.T) {
	_, err := CSV(model.RecordCollection{})
	assert.ErrorIs(t, err, model.ErrEmptyExport)

	_, err = CSV(nil)
	assert.ErrorIs(t, err, model.ErrEmptyExport)
}

func TestCSV_SingleRecord(t *testing.T) {
	out, err := CSV(model.RecordCollection{
		{Time: "2026/08/30 12:00:00", Lat: 35.681236, Lng: 139.767125, Address: "東京都千代田区", Memo: "駅前"},
	})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2, "header plus one row, no trailing newline")
	assert.Equal(t, "time,lat,lng,address,memo", lines[0])
	assert.Equal(t, `"2026/08/30 12:00:00","35.681236","139.767125","東京都千代田区","駅前"`, lines[1])
}

func TestCSV_CommasAreDestroyedNotEscaped(t *testing.T) {
	out, err := CSV(model.RecordCollection{
		{Time: "2026/08/30 12:00:00", Lat: 1, Lng: 2, Address: "a,b,c", Memo: "hello, world"},
	})
	require.NoError(t, err)

	row := strings.Split(out, "\n")[1]
	assert.Equal(t, `"2026/08/30 12:00:00","1","2","a b c","hello  world"`, row)
}

func TestCSV_SentinelCoordinates(t *testing.T) {
	out, err := CSV(model.RecordCollection{
		{Time: "2026/08/30 12:00:00", Lat: 0, Lng: 0, Address: model.AddressNoLocation, Memo: "m"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"0","0"`)
}

func TestCSV_OrderPreserved(t *testing.T) {
	out, err := CSV(model.RecordCollection{
		{Time: "t2", Memo: "newest"},
		{Time: "t1", Memo: "oldest"},
	})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "newest")
	assert.Contains(t, lines[2], "oldest")
}
