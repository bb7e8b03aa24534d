package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"orderId", "orderid"},
		{"XMLParser", "xmlparser"},
		{"getHTTPResponse", "gethttpresponse"},
		{"lambda$run$0", "lambdarun0"},
		{"<init>", "init"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestNormalizeIdentWithPrefixStrip(t *testing.T) {
	assert.Equal(t, "name", NormalizeIdentWithPrefixStrip("getName"))
	assert.Equal(t, "enabled", NormalizeIdentWithPrefixStrip("isEnabled"))
	assert.Equal(t, "get", NormalizeIdentWithPrefixStrip("get"))
	assert.Equal(t, "settle", NormalizeIdentWithPrefixStrip("settle"))
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"get", "http", "response"}, TokenizeIdent("getHTTPResponse"))
	assert.Equal(t, []string{"lambda", "run", "0"}, TokenizeIdent("lambda$run$0"))
	assert.Nil(t, TokenizeIdent(""))
}
