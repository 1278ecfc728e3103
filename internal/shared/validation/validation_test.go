package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	Price string `validate:"required,money"`
}

func TestMoney(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		price string
		ok    bool
	}{
		{"12.50", true},
		{"0", true},
		{"7", true},
		{"-1.00", false},
		{"12.505", false},
		{"twelve", false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := v.Struct(priced{Price: tt.price})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
