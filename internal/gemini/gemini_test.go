package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func candidateReply(text string) string {
	return `{"candidates": [{"content": {"parts": [{"text": ` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var pl payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pl))
		require.Len(t, pl.Contents, 1)
		require.Equal(t, "hello model", pl.Contents[0].Parts[0].Text)

		w.Write([]byte(candidateReply("hello farmer")))
	})

	reply, err := c.Generate(context.Background(), "hello model")
	require.NoError(t, err)
	require.Equal(t, "hello farmer", reply)
}

func TestGenerateVisionInlinesImage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var pl payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pl))
		parts := pl.Contents[0].Parts
		require.Len(t, parts, 2)
		require.Equal(t, "is this a crop", parts[0].Text)
		require.NotNil(t, parts[1].InlineData)
		require.Equal(t, "image/png", parts[1].InlineData.MimeType)
		require.NotEmpty(t, parts[1].InlineData.Data)

		w.Write([]byte(candidateReply("crop")))
	})

	reply, err := c.GenerateVision(context.Background(), "is this a crop", []byte{0x89, 0x50}, "image/png")
	require.NoError(t, err)
	require.Equal(t, "crop", reply)
}

func TestGenerateNon200(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "quota"}`))
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-200")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no content found")
}
