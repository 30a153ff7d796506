package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyInfoAllCategories(t *testing.T) {
	text := "Invoice dated 12/05/2023 from Acme Corporation. Total 4,500.50 due. " +
		"Email billing@acme.example.com or call 555-123-4567. Order shipped on January 5, 2024."

	info := ExtractKeyInfo(text)

	assert.Equal(t, []string{"12/05/2023", "January 5, 2024"}, info.Dates)
	assert.Equal(t, []string{"4,500.50", "555", "123", "4567"}, info.Numbers)
	assert.Equal(t, []string{"billing@acme.example.com"}, info.EmailAddresses)
	assert.Equal(t, []string{"555-123-4567"}, info.PhoneNumbers)
	assert.Equal(t, []string{"Acme Corporation"}, info.Entities)
}

func TestExtractKeyInfoDateComponentsStayOutOfNumbers(t *testing.T) {
	info := ExtractKeyInfo("Delivered 2023-01-15, quantity 42.")

	assert.Equal(t, []string{"2023-01-15"}, info.Dates)
	assert.Equal(t, []string{"42"}, info.Numbers)
}

func TestExtractKeyInfoEntityStoplist(t *testing.T) {
	info := ExtractKeyInfo("The Quick Brown fox visited New York City. This Other Thing too.")

	assert.Contains(t, info.Entities, "New York City")
	assert.NotContains(t, info.Entities, "The Quick Brown")
	assert.NotContains(t, info.Entities, "This Other Thing")
}

func TestExtractKeyInfoPhoneDialects(t *testing.T) {
	info := ExtractKeyInfo("Call 555-867-5309, (212) 555-0100, or 415.555.2671.")

	assert.Equal(t, []string{"555-867-5309", "(212) 555-0100", "415.555.2671"}, info.PhoneNumbers)
}

func TestExtractKeyInfoEmptyInput(t *testing.T) {
	info := ExtractKeyInfo("")

	assert.Empty(t, info.Dates)
	assert.Empty(t, info.Numbers)
	assert.Empty(t, info.EmailAddresses)
	assert.Empty(t, info.PhoneNumbers)
	assert.Empty(t, info.Entities)
	assert.NotNil(t, info.Dates)
}
