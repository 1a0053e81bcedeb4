package wizard

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleState() *State {
	s := New("0b6e4c3e-5d0c-4d8e-9a43-1c2f0f7c9e11", 2024)
	s.Profile = &Profile{
		Name: "Acme Ltd",
		RegistrationCertificate: &Attachment{
			Name: "cert.pdf", MIMEType: "application/pdf", Size: 4, Data: []byte("%PDF"),
		},
		PriorReport: &Attachment{Name: "report.xlsx", Size: 2, Data: []byte("PK")},
	}
	s.GHG = &GHGInventory{
		Year:        ptr(2024),
		Scope1TCO2e: ptr(100.0),
		Scope1Rows:  []Scope1Row{{Category: "mobile", Quantity: ptr(10.0), EFKgPerUnit: ptr(2.5)}},
	}
	s.SyncIDs.Water = "w-1"
	return s
}

func TestClone_Independent(t *testing.T) {
	orig := sampleState()
	c, err := orig.Clone()
	require.NoError(t, err)
	require.Equal(t, orig, c)

	*c.GHG.Scope1TCO2e = 1
	c.GHG.Scope1Rows[0].Category = "fugitive"
	c.SyncIDs.GHG = "g-9"
	c.Profile.RegistrationCertificate.Data[0] = 'X'

	assert.InDelta(t, 100.0, *orig.GHG.Scope1TCO2e, 0)
	assert.Equal(t, "mobile", orig.GHG.Scope1Rows[0].Category)
	assert.Empty(t, orig.SyncIDs.GHG)
	assert.Equal(t, byte('%'), orig.Profile.RegistrationCertificate.Data[0])
}

func TestClone_Errors(t *testing.T) {
	var s *State
	_, err := s.Clone()
	require.ErrorIs(t, err, ErrNilState)

	bad := New("c", 2024)
	bad.GHG = &GHGInventory{Scope1TCO2e: ptr(math.NaN())}
	_, err = bad.Clone()
	require.Error(t, err)
}

func TestStripAttachments(t *testing.T) {
	s := sampleState()
	s.StripAttachments()

	require.NotNil(t, s.Profile.RegistrationCertificate)
	assert.Nil(t, s.Profile.RegistrationCertificate.Data)
	assert.Equal(t, "cert.pdf", s.Profile.RegistrationCertificate.Name)
	assert.Equal(t, int64(4), s.Profile.RegistrationCertificate.Size)
	assert.Nil(t, s.Profile.PriorReport.Data)

	// No profile is a no-op.
	New("c", 2024).StripAttachments()
}

func TestEncodeLoad_RoundTrip(t *testing.T) {
	s := sampleState()
	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	got, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(bytes.NewBufferString("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding wizard state")
}

func TestReportingYear(t *testing.T) {
	s := &State{GHG: &GHGInventory{Year: ptr(2023)}}
	y, ok := s.ReportingYear()
	require.True(t, ok)
	assert.Equal(t, 2023, y)

	s.Year = ptr(2024)
	y, ok = s.ReportingYear()
	require.True(t, ok)
	assert.Equal(t, 2024, y)

	_, ok = (&State{}).ReportingYear()
	assert.False(t, ok)
}
