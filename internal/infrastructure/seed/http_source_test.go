package seed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seed/vr_scenes.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"scene-1"}]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL+"/seed/", time.Second, quietLogger())

	data, err := source.Fetch(context.Background(), ResourceVRScenes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"scene-1"}]`, string(data))

	_, err = source.Fetch(context.Background(), ResourceUsers)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSource_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"therapists":[],"patients":[]}`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, time.Second, quietLogger())

	_, err := source.Fetch(context.Background(), ResourceUsers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(1), calls.Load())
}

func TestBundledSource_ServesEveryResource(t *testing.T) {
	source := NewBundledSource()

	for _, resource := range Resources {
		data, err := source.Fetch(context.Background(), resource)
		require.NoError(t, err, resource)
		assert.NotEmpty(t, data, resource)
	}
}
