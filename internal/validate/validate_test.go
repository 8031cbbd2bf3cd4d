package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{"valid", "a@b.com", true},
		{"valid subdomain", "manager@pharmacy.example.org", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"no at", "abc.com", false},
		{"display name", "Boss <a@b.com>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPasswordBounds(t *testing.T) {
	assert.Error(t, Password(""))
	assert.Error(t, Password(strings.Repeat("x", 7)))
	assert.NoError(t, Password(strings.Repeat("x", 8)))
	assert.NoError(t, Password(strings.Repeat("x", 256)))
	assert.Error(t, Password(strings.Repeat("x", 257)))
}

func TestVerificationCode(t *testing.T) {
	// клиент шлёт число либо строку
	n, err := VerificationCode(float64(123456))
	require.NoError(t, err)
	assert.Equal(t, 123456, n)

	n, err = VerificationCode("042371")
	require.NoError(t, err)
	assert.Equal(t, 42371, n)

	_, err = VerificationCode("not-a-number")
	assert.Error(t, err)
	_, err = VerificationCode(nil)
	assert.Error(t, err)
}

func TestManagerInfo(t *testing.T) {
	phone, err := ManagerInfo("Amel", "B", float64(555123456))
	require.NoError(t, err)
	assert.Equal(t, int64(555123456), phone)

	_, err = ManagerInfo("", "B", float64(1))
	assert.Error(t, err)
	_, err = ManagerInfo("A", "", float64(1))
	assert.Error(t, err)
	_, err = ManagerInfo("A", "B", nil)
	assert.Error(t, err)
}

func TestPharmacyInfo(t *testing.T) {
	serial, date, err := PharmacyInfo("Central Pharmacy", float64(778899), "2023-04-01")
	require.NoError(t, err)
	assert.Equal(t, int64(778899), serial)
	assert.Equal(t, 2023, date.Year())

	_, _, err = PharmacyInfo("ab", float64(1), "2023-04-01")
	assert.Error(t, err, "company name shorter than 3")
	_, _, err = PharmacyInfo(strings.Repeat("a", 51), float64(1), "2023-04-01")
	assert.Error(t, err, "company name longer than 50")
	_, _, err = PharmacyInfo("Central", nil, "2023-04-01")
	assert.Error(t, err)
	_, _, err = PharmacyInfo("Central", float64(1), "yesterday")
	assert.Error(t, err)
}

func TestAdress(t *testing.T) {
	assert.NoError(t, Adress("12 Main St"))
	assert.Error(t, Adress(""))
	assert.Error(t, Adress("ab"))
	assert.Error(t, Adress(strings.Repeat("a", 51)))
}

func TestTimeOfDay(t *testing.T) {
	assert.NoError(t, TimeOfDay("08:30"))
	assert.NoError(t, TimeOfDay("23:59"))
	assert.Error(t, TimeOfDay("24:00"))
	assert.Error(t, TimeOfDay("8am"))
}

func TestInt64Coercion(t *testing.T) {
	n, err := Int64("  42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = Int64("")
	assert.Error(t, err)
	_, err = Int64(true)
	assert.Error(t, err)
}
