//go:build integration

// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "offer-ledger/internal"
	"offer-ledger/internal/seed"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain initializes the application against a real database, applies the
// schema and runs every test through an httptest server.
func TestMain(m *testing.M) {
	setupEnvVars()

	testApp = app.NewApplication()
	ctx := context.Background()
	if err := testApp.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}
	if err := testApp.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	code := m.Run()
	testServer.Close()

	if err := testApp.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func setupEnvVars() {
	defaults := map[string]string{
		"SERVER_PORT": "8080",
		"DB_HOST":     "localhost",
		"DB_PORT":     "5432",
		"DB_USER":     "user",
		"DB_PASSWORD": "password",
		"DB_NAME":     "offerdb_test",
		"DB_SSLMODE":  "disable",
	}
	for key, value := range defaults {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

// reseed truncates every table and inserts the demo data set.
func reseed(t *testing.T) *seed.Result {
	res, err := testApp.Seed(context.Background(), true)
	require.NoError(t, err)
	return res
}

func makeRequest(t *testing.T, method, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

func createOffer(t *testing.T, userID, walletID, currencyID uuid.UUID, amount string) (*http.Response, map[string]interface{}) {
	body := fmt.Sprintf(`{"walletId":"%s","currencyId":"%s","amount":"%s","unitPrice":"100"}`, walletID, currencyID, amount)
	resp, raw := makeRequest(t, http.MethodPost, "/offers?userId="+userID.String(), strings.NewReader(body))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &out), raw)
	return resp, out
}

func availableBalance(t *testing.T, userID, walletID, currencyID uuid.UUID) decimal.Decimal {
	resp, raw := makeRequest(t, http.MethodGet,
		fmt.Sprintf("/wallets/%s/balances/%s?userId=%s", walletID, currencyID, userID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, raw)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	available, err := decimal.NewFromString(out["available"].(string))
	require.NoError(t, err)
	return available
}

func TestOfferLifecycleIntegration(t *testing.T) {
	res := reseed(t)
	bertha, rufus := res.Users[0], res.Users[1]
	wallet, btc := res.Wallets[0], res.Currencies[0] // 15 Bitcoin

	resp, first := createOffer(t, bertha, wallet, btc, "10")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(5).Equal(availableBalance(t, bertha, wallet, btc)))

	resp, _ = createOffer(t, bertha, wallet, btc, "6")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	t.Run("OtherUserCannotUnlist", func(t *testing.T) {
		resp, _ := makeRequest(t, http.MethodDelete, fmt.Sprintf("/offers/%s?userId=%s", first["id"], rufus), nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	resp, body := makeRequest(t, http.MethodDelete, fmt.Sprintf("/offers/%s?userId=%s", first["id"], bertha), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Offer unlisted")

	resp, body = makeRequest(t, http.MethodGet, "/offers?userId="+bertha.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, first["id"].(string))

	resp, _ = createOffer(t, bertha, wallet, btc, "10")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateOfferErrorsIntegration(t *testing.T) {
	res := reseed(t)
	bertha := res.Users[0]

	cases := []struct {
		name     string
		wallet   uuid.UUID
		currency uuid.UUID
		amount   string
		status   int
	}{
		{"UnknownWallet", uuid.New(), res.Currencies[0], "1", http.StatusNotFound},
		{"UnknownCurrency", res.Wallets[0], uuid.New(), "1", http.StatusNotFound},
		{"WalletOfAnotherUser", res.Wallets[3], res.Currencies[3], "1", http.StatusUnauthorized},
		{"NoAsset", res.Wallets[2], res.Currencies[0], "1", http.StatusForbidden},
		{"MoreThanHeld", res.Wallets[0], res.Currencies[2], "0.31", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, out := createOffer(t, bertha, tc.wallet, tc.currency, tc.amount)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Contains(t, out, "error")
		})
	}
}

func TestDailyLimitIntegration(t *testing.T) {
	res := reseed(t)
	rufus := res.Users[1]
	wallet, avax := res.Wallets[3], res.Currencies[3] // 15 Avalanche

	for i := 0; i < 5; i++ {
		resp, _ := createOffer(t, rufus, wallet, avax, "1")
		require.Equal(t, http.StatusCreated, resp.StatusCode, "offer %d", i+1)
	}
	resp, out := createOffer(t, rufus, wallet, avax, "1")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, out["error"], "daily offer limit")
}

func TestListOffersPaginationIntegration(t *testing.T) {
	res := reseed(t)
	bertha, rufus := res.Users[0], res.Users[1]

	// Five offers per seller wallet pair: 5 + 5 listed today.
	for i := 0; i < 5; i++ {
		resp, _ := createOffer(t, bertha, res.Wallets[1], res.Currencies[3], "1")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp, _ = createOffer(t, rufus, res.Wallets[4], res.Currencies[3], "1")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	pages := []struct {
		page  int
		count int
	}{{1, 4}, {2, 4}, {3, 2}, {4, 0}}
	for _, p := range pages {
		resp, raw := makeRequest(t, http.MethodGet,
			fmt.Sprintf("/offers?userId=%s&paginated=true&page=%d&limit=4", bertha, p.page), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Data []struct {
				ID       string `json:"id"`
				User     struct{ Name string } `json:"user"`
				Currency struct{ Name string } `json:"currency"`
			} `json:"data"`
			CurrentPage int `json:"currentPage"`
			LastPage    int `json:"lastPage"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &out))
		assert.Len(t, out.Data, p.count, "page %d", p.page)
		assert.Equal(t, p.page, out.CurrentPage)
		assert.Equal(t, 3, out.LastPage)
		for _, item := range out.Data {
			assert.Equal(t, "Avalanche", item.Currency.Name)
			assert.NotEmpty(t, item.User.Name)
		}
	}

	resp, raw := makeRequest(t, http.MethodGet, "/offers?userId="+bertha.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, raw, "lastPage")
	assert.Equal(t, 10, strings.Count(raw, `"unitPrice"`))

	resp, raw = makeRequest(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, raw, `offer_ledger_reference_cache_hits_total{cache="users"}`)
	assert.Contains(t, raw, `offer_ledger_reference_cache_misses_total{cache="currencies"}`)
}

// Without serialization concurrent creates may over-commit an asset, so this
// only checks that every request gets a definite answer.
func TestConcurrentCreatesIntegration(t *testing.T) {
	res := reseed(t)
	bertha := res.Users[0]
	wallet, doge := res.Wallets[0], res.Currencies[1] // 3.5 Dogecoin

	var wg sync.WaitGroup
	statuses := make([]int, 4)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"walletId":"%s","currencyId":"%s","amount":"1","unitPrice":"1"}`, wallet, doge)
			req, err := http.NewRequest(http.MethodPost, testServer.URL+"/offers?userId="+bertha.String(), strings.NewReader(body))
			if err != nil {
				return
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for _, status := range statuses {
		assert.Contains(t, []int{http.StatusCreated, http.StatusForbidden}, status)
	}
}
