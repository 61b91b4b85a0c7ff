package classifier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "leaf.jpg", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("fake image"), data)

		w.Write([]byte(`{"success": true, "disease": "Tomato Late Blight", "confidence": 0.93}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	pred, err := c.Classify(context.Background(), []byte("fake image"), "leaf.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "Tomato Late Blight", pred.Disease)
	require.Equal(t, 0.93, pred.Confidence)
}

func TestClassifyUnconfigured(t *testing.T) {
	c := NewClient("")
	_, err := c.Classify(context.Background(), []byte("x"), "x.jpg", "image/jpeg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}

func TestClassifyFailurePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "blurry image"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Classify(context.Background(), []byte("x"), "x.jpg", "image/jpeg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "blurry image")
}

func TestClassifyNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Classify(context.Background(), []byte("x"), "x.jpg", "image/jpeg")
	require.Error(t, err)
}

func TestClassifyEmptyDiseaseDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "disease": ""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	pred, err := c.Classify(context.Background(), []byte("x"), "x.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "Unknown disease", pred.Disease)
}
