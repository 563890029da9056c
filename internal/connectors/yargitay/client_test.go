package yargitay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

func TestSearch_SendsNestedPayload(t *testing.T) {
	var captured searchPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/aramadetaylist", r.URL.Path)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"data":{"data":[{"id":123,"daire":"1. Hukuk Dairesi"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.Search(context.Background(), domain.FetchQuery{
		Keyword:  "tazminat",
		Daire:    "1. Hukuk Dairesi",
		PageSize: 50,
		Page:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, "tazminat", captured.Data.ArananKelime)
	assert.Equal(t, "1. Hukuk Dairesi", captured.Data.BirimYrgKurulDaire)
	assert.Equal(t, 50, captured.Data.PageSize)
	assert.Equal(t, 2, captured.Data.PageNumber)

	require.Len(t, records, 1)
	id, ok := records[0].NumericID()
	require.True(t, ok)
	assert.Equal(t, int64(123), id)
}

func TestSearch_FourDigitQueryBecomesYearFilter(t *testing.T) {
	var captured searchPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"data":{"data":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Search(context.Background(), domain.FetchQuery{Keyword: "2023", PageSize: 10, Page: 1})
	require.NoError(t, err)

	assert.Empty(t, captured.Data.ArananKelime)
	assert.Equal(t, "2023", captured.Data.KararYil)
}

func TestSearch_DaireALLMeansUnfiltered(t *testing.T) {
	var captured searchPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"data":{"data":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Search(context.Background(), domain.FetchQuery{Keyword: "usul", Daire: "ALL", PageSize: 10, Page: 1})
	require.NoError(t, err)
	assert.Empty(t, captured.Data.BirimYrgKurulDaire)
}

func TestSearch_MissingNestingIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":{"FMTY":"error"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.Search(context.Background(), domain.FetchQuery{Keyword: "x", PageSize: 10, Page: 1})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearch_HTTPErrorIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Search(context.Background(), domain.FetchQuery{Keyword: "x", PageSize: 10, Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFullText_StripsMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getDokuman", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		w.Write([]byte(`{"data":"<html><body><p>MAHKEMESİ&nbsp;:&nbsp;Asliye   Hukuk</p><br/><p>Karar metni.</p></body></html>"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, err := client.FullText(context.Background(), 42)
	require.NoError(t, err)
	assert.Contains(t, text, "MAHKEMESİ : Asliye Hukuk")
	assert.Contains(t, text, "Karar metni.")
	assert.NotContains(t, text, "<p>")
	assert.NotContains(t, text, "&nbsp;")
}

func TestFullText_HTTPErrorIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FullText(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCleanDocument_CollapsesWhitespace(t *testing.T) {
	got := CleanDocument("a\n\n  b\t\tc")
	assert.Equal(t, "a b c", got)
}
