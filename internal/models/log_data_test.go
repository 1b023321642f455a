package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogDataKeepsSlashesAndUnicodeLiteral(t *testing.T) {
	data := LogData{"path": "a/b", "name": "日本語"}

	value, err := data.Value()
	require.NoError(t, err)

	encoded, ok := value.(string)
	require.True(t, ok)
	require.Contains(t, encoded, "a/b")
	require.Contains(t, encoded, "日本語")
	require.NotContains(t, encoded, `\/`)
	require.NotContains(t, encoded, `\u`)
}

func TestLogDataNilRoundTripsToNull(t *testing.T) {
	var data LogData

	value, err := data.Value()
	require.NoError(t, err)
	require.Nil(t, value)

	var scanned LogData
	require.NoError(t, scanned.Scan(nil))
	require.Nil(t, scanned)
}

func TestLogDataScanDecodesStoredPayload(t *testing.T) {
	var data LogData
	require.NoError(t, data.Scan(`{"id":1,"username":"mariano"}`))

	require.Equal(t, "mariano", data["username"])
	require.EqualValues(t, 1, data["id"])
}
