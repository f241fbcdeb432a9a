package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{
			name:     "valid username - lowercase",
			username: "alice",
		},
		{
			name:     "valid username - with underscore",
			username: "alice_smith",
		},
		{
			name:     "valid username - all numbers",
			username: "123456",
		},
		{
			name:     "valid username - max length",
			username: "a1234567890123456789012345678901", // 32 символа
		},
		{
			name:     "invalid - empty username",
			username: "",
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "invalid - too short (2 chars)",
			username: "ab",
			wantErr:  true,
			errMsg:   "must be at least 3 characters",
		},
		{
			name:     "invalid - too long (33 chars)",
			username: "a12345678901234567890123456789012",
			wantErr:  true,
			errMsg:   "must not exceed 32 characters",
		},
		{
			name:     "invalid - contains space",
			username: "alice smith",
			wantErr:  true,
			errMsg:   "can only contain letters",
		},
		{
			name:     "invalid - contains dash",
			username: "alice-smith",
			wantErr:  true,
			errMsg:   "can only contain letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "a@b.com"},
		{name: "valid - subdomain", email: "alice@mail.example.org"},
		{name: "invalid - empty", email: "", wantErr: true},
		{name: "invalid - no at", email: "alice.example.com", wantErr: true},
		{name: "invalid - no tld", email: "alice@example", wantErr: true},
		{name: "invalid - space", email: "al ice@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{
			name:     "valid password - exactly 6 chars",
			password: "secret",
		},
		{
			name:     "valid password - unicode",
			password: "пароль",
		},
		{
			name:     "invalid - empty password",
			password: "",
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
		{
			name:     "invalid - too short (5 chars)",
			password: "12345",
			wantErr:  true,
			errMsg:   "must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName("Alice Smith"))
	assert.ErrorIs(t, ValidateFullName("   "), ErrRequired)

	long := make([]rune, MaxFullNameLen+1)
	for i := range long {
		long[i] = 'я'
	}
	assert.ErrorContains(t, ValidateFullName(string(long)), "must not exceed")
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("title", "My cat"))

	err := ValidateRequired("title", " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequired)
	assert.Equal(t, "title cannot be empty", err.Error())
}
