package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain digits", "11987654321", "11987654321", false},
		{"formatted", "(11) 98765-4321", "11987654321", false},
		{"with country code", "+55 11 98765-4321", "11987654321", false},
		{"country code no plus", "5511987654321", "11987654321", false},
		{"too short", "1198765432", "", true},
		{"too long", "119876543210", "", true},
		{"landline ten digits", "(11) 3456-7890", "", true},
		{"empty", "", "", true},
		{"letters only", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient(t *testing.T) {
	ownerID := uuid.New()

	client, err := NewClient(ownerID, "  Maria Silva  ", "(11) 98765-4321", " maria@example.com ", " Rua A, 123 ")
	require.NoError(t, err)

	assert.Equal(t, ownerID, client.OwnerID)
	assert.Equal(t, "Maria Silva", client.Name)
	assert.Equal(t, "11987654321", client.Phone)
	assert.Equal(t, "maria@example.com", client.Email)
	assert.Equal(t, "Rua A, 123", client.Address)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(uuid.New(), "", "11987654321", "", "")
	assert.Error(t, err)

	_, err = NewClient(uuid.New(), "   ", "11987654321", "", "")
	assert.Error(t, err)

	_, err = NewClient(uuid.New(), "Maria", "123", "", "")
	assert.Error(t, err)
}

func TestClient_Update(t *testing.T) {
	client, err := NewClient(uuid.New(), "Maria", "11987654321", "a@b.com", "Rua A")
	require.NoError(t, err)

	newName := "Maria Souza"
	newPhone := "(21) 99999-8888"
	err = client.Update(&newName, &newPhone, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza", client.Name)
	assert.Equal(t, "21999998888", client.Phone)
	assert.Equal(t, "a@b.com", client.Email)
	assert.Equal(t, "Rua A", client.Address)
}

func TestClient_Update_Validation(t *testing.T) {
	client, err := NewClient(uuid.New(), "Maria", "11987654321", "", "")
	require.NoError(t, err)

	empty := "  "
	assert.Error(t, client.Update(&empty, nil, nil, nil))

	badPhone := "12345"
	assert.Error(t, client.Update(nil, &badPhone, nil, nil))
	assert.Equal(t, "11987654321", client.Phone)
}
