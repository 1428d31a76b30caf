package line

import (
	"testing"
)

func TestValidateSignature(t *testing.T) {
	secret := "test-channel-secret"
	body := []byte(`{"destination":"xxx","events":[]}`)

	tests := []struct {
		name      string
		secret    string
		signature string
		body      []byte
		want      bool
	}{
		{
			name:      "valid signature",
			secret:    secret,
			signature: Sign(secret, body),
			body:      body,
			want:      true,
		},
		{
			name:      "wrong secret",
			secret:    "other-secret",
			signature: Sign(secret, body),
			body:      body,
			want:      false,
		},
		{
			name:      "tampered body",
			secret:    secret,
			signature: Sign(secret, body),
			body:      []byte(`{"destination":"xxx","events":[{}]}`),
			want:      false,
		},
		{
			name:      "not base64",
			secret:    secret,
			signature: "%%%not-base64%%%",
			body:      body,
			want:      false,
		},
		{
			name:      "empty signature",
			secret:    secret,
			signature: "",
			body:      body,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSignature(tt.secret, tt.signature, tt.body)
			if got != tt.want {
				t.Errorf("ValidateSignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
