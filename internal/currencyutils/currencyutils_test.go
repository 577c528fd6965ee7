package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseStatementAmount(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"Comma decimal separator", "1234,56", "1234.56"},
		{"Dot decimal separator", "1234.56", "1234.56"},
		{"Whole number", "5000", "5000"},
		{"Leading and trailing spaces", " 99,90 ", "99.9"},
		{"Unparseable token yields zero", "abc", "0"},
		{"Empty token yields zero", "", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(ParseStatementAmount(tc.token)),
				"got %s", ParseStatementAmount(tc.token))
		})
	}
}

func TestParseSubAmount(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		expected  string
		expectErr bool
	}{
		{"Roubles with kopecks", "5537=40", "5537", false},
		{"Roubles only", "1200", "1200", false},
		{"Kopecks discarded entirely", "100=99", "100", false},
		{"Garbage", "x=40", "", true},
		{"Empty before separator", "=40", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseSubAmount(tc.token)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(amount), "got %s", amount)
		})
	}
}
