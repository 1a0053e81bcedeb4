package draft

import (
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/wizard"
)

func sampleState() *wizard.State {
	s := wizard.New("0b6c2c3e-8a55-4d1c-9a53-1f4c3b1a9e10", 2024)
	s.Profile = &wizard.Profile{
		Name: "Acme",
		RegistrationCertificate: &wizard.Attachment{
			Name: "cert.pdf", MIMEType: "application/pdf", Size: 4, Data: []byte("%PDF"),
		},
	}
	s.SyncIDs.Governance = "gov-1"
	return s
}

func TestNewEnvelope_StripsAttachmentsOnClone(t *testing.T) {
	state := sampleState()
	env, err := NewEnvelope(state)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	_, err = ulid.Parse(env.DraftID)
	require.NoError(t, err)
	assert.Nil(t, env.State.Profile.RegistrationCertificate.Data)
	assert.Equal(t, "cert.pdf", env.State.Profile.RegistrationCertificate.Name)

	// the caller's state keeps its bytes
	assert.Equal(t, []byte("%PDF"), state.Profile.RegistrationCertificate.Data)
}

func TestDecode_Versions(t *testing.T) {
	year := 2023
	state := &wizard.State{GHG: &wizard.GHGInventory{Year: &year}}

	encode := func(version string) []byte {
		data, err := json.Marshal(Envelope{SchemaVersion: version, DraftID: "x", State: state})
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name     string
		data     []byte
		wantErr  error
		wantYear *int
	}{
		{name: "current", data: encode(SchemaVersion)},
		{name: "older minor migrates year", data: encode("1.0.0"), wantYear: &year},
		{name: "newer minor loads", data: encode("1.9.0")},
		{name: "other major", data: encode("2.0.0"), wantErr: ErrIncompatibleDraft},
		{name: "garbage version", data: encode("banana"), wantErr: ErrCorruptDraft},
		{name: "not json", data: []byte("{"), wantErr: ErrCorruptDraft},
		{name: "no state", data: []byte(`{"schemaVersion":"1.1.0"}`), wantErr: ErrCorruptDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantYear != nil {
				require.NotNil(t, env.State.Year)
				assert.Equal(t, *tt.wantYear, *env.State.Year)
				assert.Equal(t, SchemaVersion, env.SchemaVersion)
			}
		})
	}
}

func TestEncode_NilState(t *testing.T) {
	_, err := Encode(&Envelope{})
	assert.ErrorIs(t, err, wizard.ErrNilState)
}
