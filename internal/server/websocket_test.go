package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	t.Helper()
	ts := httptest.NewServer(srv.Routes(false))
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn, func() {
		_ = conn.Close()
		ts.Close()
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStreamSpotRequest(t *testing.T) {
	f := &fakeSpotter{result: testResult()}
	conn, cleanup := dialStream(t, newTestServer(f))
	defer cleanup()

	req := StreamRequest{RequestID: "r1", Image: pngBytes(t)}
	require.NoError(t, conn.WriteJSON(req))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "r1", resp.RequestID)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, f.calls)
}

func TestStreamInvalidFrame(t *testing.T) {
	conn, cleanup := dialStream(t, newTestServer(&fakeSpotter{}))
	defer cleanup()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "invalid request frame")
}

func TestStreamMissingImage(t *testing.T) {
	conn, cleanup := dialStream(t, newTestServer(&fakeSpotter{}))
	defer cleanup()

	require.NoError(t, conn.WriteJSON(StreamRequest{RequestID: "r2"}))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "r2", resp.RequestID)
}

func TestStreamBadImageBytes(t *testing.T) {
	conn, cleanup := dialStream(t, newTestServer(&fakeSpotter{}))
	defer cleanup()

	require.NoError(t, conn.WriteJSON(StreamRequest{RequestID: "r3", Image: []byte("nope")}))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "invalid image format")
}

func TestStreamMultipleRequestsOneConnection(t *testing.T) {
	f := &fakeSpotter{result: testResult()}
	conn, cleanup := dialStream(t, newTestServer(f))
	defer cleanup()

	img := pngBytes(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteJSON(StreamRequest{Image: img}))
		var resp StreamResponse
		require.NoError(t, conn.ReadJSON(&resp))
		assert.Equal(t, "completed", resp.Status)
	}
	assert.Equal(t, 3, f.calls)
}
