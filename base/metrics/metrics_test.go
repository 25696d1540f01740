package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"table:offerings", "func:insert"}, parseTag([]string{"table", "offerings", "func", "insert"}))
	req.Equal([]string{}, parseTag(nil))
	req.Panics(func() { parseTag([]string{"dangling"}) })
}

func TestBumpWithoutAgent(t *testing.T) {
	req := require.New(t)
	m := New("test", WithoutPodName())

	req.NotPanics(func() {
		m.BumpSum("count", 1, "k", "v")
		m.BumpAvg("avg", 2)
		m.BumpHistogram("hist", 3)
		m.BumpTime("time", "k", "v").End()
		// odd tags are recovered instead of crashing the caller
		m.BumpSum("broken", 1, "dangling")
	})
	_, ok := ddClients[0].(*LogClient)
	req.True(ok)
}
