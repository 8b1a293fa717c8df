package fundgz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leyuan/sportdesk/internal/domain/finance"
)

func TestFetchFunds_ParsesJSONP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/js/110011.js", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("rt"), "cache buster must be present")
		_, _ = w.Write([]byte(`jsonpgz({"fundcode":"110011","name":"易方达优质精选","jzrq":"2026-08-27","dwjz":"3.1234","gsz":"3.1300","gszzl":"0.21"});`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	items, err := client.FetchFunds(context.Background(), []string{"110011"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	fund := items[0]
	assert.Equal(t, "fund_110011", fund.ID)
	assert.Equal(t, finance.AssetFund, fund.Type)
	assert.Equal(t, "110011", fund.Symbol)
	assert.Equal(t, "易方达优质精选", fund.Name)
	assert.InDelta(t, 3.13, fund.Price, 1e-9)
	assert.InDelta(t, 0.21, fund.ChangePercent, 1e-9)
	assert.InDelta(t, 3.1234*0.21/100, fund.Change, 1e-9)
	assert.Equal(t, "CNY", fund.Currency)
}

func TestFetchFunds_FallsBackToConfirmedValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`jsonpgz({"fundcode":"005827","name":"某封闭基金","dwjz":"1.5000","gsz":"","gszzl":""});`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	items, err := client.FetchFunds(context.Background(), []string{"005827"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 1.5, items[0].Price, 1e-9)
	assert.Zero(t, items[0].ChangePercent)
}

func TestFetchFunds_SkipsFailingCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/js/badcode.js" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`jsonpgz({"fundcode":"110011","name":"易方达优质精选","dwjz":"3.1234","gsz":"3.1300","gszzl":"0.21"});`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	items, err := client.FetchFunds(context.Background(), []string{"badcode", "110011"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fund_110011", items[0].ID)
}

func TestFetchFunds_EmptyInput(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused", Timeout: time.Second})
	items, err := client.FetchFunds(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}
