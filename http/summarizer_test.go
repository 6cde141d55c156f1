package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/taxdoc"
	taxdochttp "github.com/fwojciec/taxdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("posts content and returns the summary", func(t *testing.T) {
		t.Parallel()

		var got taxdochttp.SummarizeRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/summarize", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(taxdochttp.SummarizeResponse{Summary: "청구 기각"})
		}))
		defer server.Close()

		summary, err := taxdochttp.NewSummarizer(server.URL+"/").Summarize(context.Background(), "# 주 문")

		require.NoError(t, err)
		assert.Equal(t, "청구 기각", summary)
		assert.Equal(t, "# 주 문", got.Content)
	})

	t.Run("returns the error reported in the body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer server.Close()

		_, err := taxdochttp.NewSummarizer(server.URL).Summarize(context.Background(), "본문")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("returns error for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := taxdochttp.NewSummarizer(server.URL).Summarize(context.Background(), "본문")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()

		_, err := taxdochttp.NewSummarizer("http://unused.invalid").Summarize(context.Background(), " ")

		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	})
}
