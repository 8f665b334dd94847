package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacation-shop/go-backend/pkg/e"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"bad request", e.ErrStatusBadRequest, http.StatusBadRequest},
		{"invalid price", e.ErrInvalidPrice, http.StatusBadRequest},
		{"invalid date range", e.ErrInvalidDateRange, http.StatusBadRequest},
		{"invalid credentials", e.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", e.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", e.ErrForbidden, http.StatusForbidden},
		{"product not found", e.ErrProductNotFound, http.StatusNotFound},
		{"order not found", e.ErrOrderNotFound, http.StatusNotFound},
		{"email taken", e.ErrEmailTaken, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestToHTTPResponseWrapped(t *testing.T) {
	wrapped := e.Wrap("ProductUseCase.GetProductByID", e.ErrProductNotFound)

	code, msg := ToHTTPResponse(wrapped)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, e.ErrProductNotFound.Error(), msg)
}

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "600", 60000, false},
		{"two decimals", "599.99", 59999, false},
		{"one decimal", "150.5", 15050, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"negative", "-1", 0, true},
		{"three decimals", "10.999", 0, true},
		{"not a number", "abc", 0, true},
		{"over limit", "1000000001", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	got, err := parseAmount(json.Number("150.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(15000), got)

	got, err = parseAmount(json.Number(""))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-07-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2026-07-10T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	got, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDate("10.07.2026")
	require.ErrorIs(t, err, e.ErrInvalidDateRange)
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, 599.99, centsToAmount(59999))
	assert.Equal(t, 900.0, centsToAmount(90000))
	assert.Zero(t, centsToAmount(0))
}
