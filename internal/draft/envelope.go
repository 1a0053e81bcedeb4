package draft

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/esgsync/internal/wizard"
)

// SchemaVersion is the envelope version written by this build.
const SchemaVersion = "1.1.0"

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "esg_wizard_state"

// Draft errors.
var (
	ErrNotFound          = errors.New("draft not found")
	ErrInvalidKey        = errors.New("draft key cannot be empty")
	ErrIncompatibleDraft = errors.New("draft was written by an incompatible schema version")
	ErrCorruptDraft      = errors.New("draft is corrupt")
)

//nolint:gochecknoglobals // parsed once at init
var current = semver.MustParse(SchemaVersion)

//nolint:gochecknoglobals // monotonic entropy must be shared
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newDraftID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Envelope wraps a saved wizard state.
type Envelope struct {
	SchemaVersion string        `json:"schemaVersion"`
	DraftID       string        `json:"draftId"`
	SavedAt       time.Time     `json:"savedAt"`
	State         *wizard.State `json:"state"`
}

// NewEnvelope clones state, strips attachment contents and stamps it with a
// fresh draft id.
func NewEnvelope(state *wizard.State) (*Envelope, error) {
	clone, err := state.Clone()
	if err != nil {
		return nil, err
	}
	clone.StripAttachments()
	now := time.Now().UTC()
	return &Envelope{
		SchemaVersion: SchemaVersion,
		DraftID:       newDraftID(now),
		SavedAt:       now,
		State:         clone,
	}, nil
}

// Encode marshals the envelope.
func Encode(env *Envelope) ([]byte, error) {
	if env == nil || env.State == nil {
		return nil, wizard.ErrNilState
	}
	return json.Marshal(env)
}

// Decode unmarshals an envelope, rejecting other major versions and
// migrating older minor versions forward.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDraft, err)
	}
	if env.State == nil {
		return nil, fmt.Errorf("%w: missing state", ErrCorruptDraft)
	}
	v, err := semver.NewVersion(env.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: schema version %q", ErrCorruptDraft, env.SchemaVersion)
	}
	if v.Major() != current.Major() {
		return nil, fmt.Errorf("%w: %s (this build reads %d.x)", ErrIncompatibleDraft, v, current.Major())
	}
	if v.LessThan(current) {
		migrate(&env, v)
	}
	return &env, nil
}

// migrate upgrades an envelope written by an older minor version in place.
func migrate(env *Envelope, from *semver.Version) {
	// 1.0 drafts kept the reporting year only on the GHG inventory.
	if from.Minor() < 1 && env.State.Year == nil && env.State.GHG != nil && env.State.GHG.Year != nil {
		year := *env.State.GHG.Year
		env.State.Year = &year
	}
	env.SchemaVersion = SchemaVersion
}
