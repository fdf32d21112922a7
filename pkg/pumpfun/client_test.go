package pumpfun

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("Get New Coins", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/coins/new", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Equal(t, "created_timestamp", r.URL.Query().Get("sort"))
			assert.Equal(t, "desc", r.URL.Query().Get("order"))

			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Data: []CoinData{
					{Mint: "mint-1", Name: "One", Symbol: "ONE"},
					{Mint: "mint-2", Name: "Two", Symbol: "TWO"},
				},
			})
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL)
		coins, err := client.GetNewCoins(5)
		require.NoError(t, err)
		require.Len(t, coins, 2)
		assert.Equal(t, "mint-1", coins[0].Mint)
	})

	t.Run("Get Hot Coins Sorts By Volume", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/coins/hot", r.URL.Path)
			assert.Equal(t, "volume_24h", r.URL.Query().Get("sort"))

			json.NewEncoder(w).Encode(apiResponse{Success: true})
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL)
		coins, err := client.GetHotCoins(10)
		require.NoError(t, err)
		assert.Empty(t, coins)
	})

	t.Run("Envelope Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(apiResponse{Success: false})
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL)
		_, err := client.GetNewCoins(5)
		assert.Error(t, err)
	})

	t.Run("HTTP Error Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL)
		_, err := client.GetNewCoins(5)
		assert.Error(t, err)
	})

	t.Run("Get Coin By Mint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/coins/mint-1", r.URL.Path)
			json.NewEncoder(w).Encode(CoinData{
				Mint:               "mint-1",
				Name:               "One",
				Symbol:             "ONE",
				VirtualSolReserves: 12000,
			})
		}))
		defer server.Close()

		client := NewClientWithBaseURL(server.URL)
		coin, err := client.GetCoin("mint-1")
		require.NoError(t, err)
		assert.Equal(t, "ONE", coin.Symbol)
		assert.Equal(t, float64(12000), coin.VirtualSolReserves)
	})
}
