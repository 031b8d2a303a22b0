package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/generate", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "where is my shipment", req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{Text: "Your shipment is in transit."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second, logger.NewNop())
	reply, fallback := c.Reply(context.Background(), "where is my shipment")
	assert.Equal(t, "Your shipment is in transit.", reply)
	assert.False(t, fallback)
}

func TestReply_CachesRepeatedPrompts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(generateResponse{Text: "cached answer"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())
	for i := 0; i < 3; i++ {
		reply, _ := c.Reply(context.Background(), "same question")
		assert.Equal(t, "cached answer", reply)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestReply_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())
	reply, fallback := c.Reply(context.Background(), "hello")
	assert.Equal(t, FallbackReply, reply)
	assert.True(t, fallback)
}

func TestReply_FallbackWhenUnconfigured(t *testing.T) {
	c := NewClient("", "", time.Second, logger.NewNop())
	reply, fallback := c.Reply(context.Background(), "hello")
	assert.Equal(t, FallbackReply, reply)
	assert.True(t, fallback)
}

func TestReply_HonorsCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, "", 10*time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply, fallback := c.Reply(ctx, "hello")
	assert.Equal(t, FallbackReply, reply)
	assert.True(t, fallback)
}
