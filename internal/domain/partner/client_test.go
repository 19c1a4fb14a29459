package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active client with valid fields", func(t *testing.T) {
		client, err := NewClient(tenantID, ClientKindOrganization, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, tenantID, client.TenantID)
		assert.Equal(t, ClientStatusActive, client.Status)
		assert.NotEqual(t, uuid.Nil, client.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient(tenantID, ClientKindIndividual, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewClient(tenantID, ClientKind("company"), "Acme")
		assert.Error(t, err)
	})
}

func TestClientSetDocuments(t *testing.T) {
	client, err := NewClient(uuid.New(), ClientKindOrganization, "Acme Corp")
	require.NoError(t, err)

	client.SetDocuments("", "12.345.678/0001-99", "")

	assert.Equal(t, "12345678000199", client.CNPJ)
	assert.Equal(t, "12345678000199", client.Document())
}

func TestClientDocumentByKind(t *testing.T) {
	tenantID := uuid.New()

	individual, _ := NewClient(tenantID, ClientKindIndividual, "Jo Silva")
	individual.SetDocuments("123.456.789-09", "", "")
	assert.Equal(t, "12345678909", individual.Document())

	foreign, _ := NewClient(tenantID, ClientKindForeign, "Acme GmbH")
	foreign.SetDocuments("", "", "DE-998877")
	assert.Equal(t, "DE-998877", foreign.Document())
}

func TestClientReplaceAddresses(t *testing.T) {
	client, err := NewClient(uuid.New(), ClientKindIndividual, "Jo Silva")
	require.NoError(t, err)

	t.Run("assigns ids and keeps a single principal", func(t *testing.T) {
		client.ReplaceAddresses([]Address{
			{Type: AddressTypeBilling, Street: "Rua A", Principal: true},
			{Type: AddressTypeShipping, Street: "Rua B", Principal: true},
		})

		require.Len(t, client.Addresses, 2)
		assert.NotEqual(t, uuid.Nil, client.Addresses[0].ID)
		assert.True(t, client.Addresses[0].Principal)
		assert.False(t, client.Addresses[1].Principal)
	})

	t.Run("empty replacement clears the collection", func(t *testing.T) {
		client.ReplaceAddresses(nil)
		assert.Empty(t, client.Addresses)
	})
}

func TestClientReplaceContacts(t *testing.T) {
	client, err := NewClient(uuid.New(), ClientKindIndividual, "Jo Silva")
	require.NoError(t, err)

	client.ReplaceContacts([]Contact{
		{Type: ContactTypePhone, Value: "+55 (11) 99888-7766", Principal: true},
		{Type: ContactTypeEmail, Value: "jo@example.com"},
	})

	require.Len(t, client.Contacts, 2)
	assert.Equal(t, "5511998887766", client.Contacts[0].Value, "phone contacts are stored digits-only")
	assert.Equal(t, "jo@example.com", client.Contacts[1].Value, "email contacts keep their form")
}

func TestClientContactInfo(t *testing.T) {
	client, err := NewClient(uuid.New(), ClientKindIndividual, "Jo Silva")
	require.NoError(t, err)

	t.Run("normalizes phone", func(t *testing.T) {
		require.NoError(t, client.SetContactInfo("jo@example.com", "(11) 4002-8922"))
		assert.Equal(t, "1140028922", client.Phone)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, client.SetContactInfo("not-an-email", ""))
	})
}

func TestClientStatusTransitions(t *testing.T) {
	client, err := NewClient(uuid.New(), ClientKindIndividual, "Jo Silva")
	require.NoError(t, err)

	client.Deactivate()
	assert.False(t, client.IsActive())

	client.Activate()
	assert.True(t, client.IsActive())
}
