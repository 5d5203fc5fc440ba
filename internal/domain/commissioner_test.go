package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

func TestNewPixKey(t *testing.T) {
	tests := []struct {
		name      string
		keyType   PixKeyType
		value     string
		wantValue string
		wantErr   bool
	}{
		{name: "telefone formatado é normalizado", keyType: PixKeyPhone, value: "(11) 98765-4321", wantValue: "11987654321"},
		{name: "telefone com DDI", keyType: PixKeyPhone, value: "+55 11 98765-4321", wantValue: "+5511987654321"},
		{name: "telefone com letras", keyType: PixKeyPhone, value: "abc11987654321", wantErr: true},
		{name: "telefone curto", keyType: PixKeyPhone, value: "98765", wantErr: true},
		{name: "cpf válido", keyType: PixKeyCPF, value: "529.982.247-25", wantValue: "529.982.247-25"},
		{name: "cpf com dígito errado", keyType: PixKeyCPF, value: "529.982.247-26", wantErr: true},
		{name: "email em minúsculas", keyType: PixKeyEmail, value: "Carlos@Example.com", wantValue: "carlos@example.com"},
		{name: "chave aleatória", keyType: "random", value: "0F8FAD5B-D9CB-469F-A165-70867728950E", wantValue: "0f8fad5b-d9cb-469f-a165-70867728950e"},
		{name: "tipo desconhecido", keyType: "BOLETO", value: "123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewPixKey(tt.keyType, tt.value)
			if tt.wantErr {
				var domainErr *Error
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, apiErrors.ErrInvalidPixKey, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, key.Value())
		})
	}
}

func TestPhoneKey_ValidateRejeitaValorBruto(t *testing.T) {
	assert.Error(t, PhoneKey{Phone: "abc11987654321"}.Validate())
	assert.NoError(t, PhoneKey{Phone: "11987654321"}.Validate())
}
