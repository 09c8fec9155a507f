package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `json:"clientEmail" validate:"required,email"`
	Method string `json:"paymentMethod" validate:"required,oneof=easypaisa paypal"`
	Count  int64  `json:"requiredFollowers" validate:"min=1"`
}

func TestRequestValidator_Messages(t *testing.T) {
	v := New()

	cases := []struct {
		name string
		in   sampleRequest
		want string
	}{
		{"missing", sampleRequest{Method: "paypal", Count: 1}, "missing required field: clientEmail"},
		{"email", sampleRequest{Email: "nope", Method: "paypal", Count: 1}, "invalid clientEmail"},
		{"oneof", sampleRequest{Email: "a@x.test", Method: "cash", Count: 1}, "invalid paymentMethod: must be one of [easypaisa paypal]"},
		{"min", sampleRequest{Email: "a@x.test", Method: "paypal"}, "requiredFollowers must be at least 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, Message(err))
		})
	}
}

func TestRequestValidator_OK(t *testing.T) {
	err := New().Validate(&sampleRequest{Email: "a@x.test", Method: "paypal", Count: 5})
	assert.NoError(t, err)
	assert.Equal(t, "invalid request", Message(assert.AnError))
}
