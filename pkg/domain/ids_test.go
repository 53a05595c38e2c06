package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseControlID(t *testing.T) {
	controlID, err := ParseControlID("SWIFT-2.8")
	require.NoError(t, err)
	assert.Equal(t, ControlID("SWIFT-2.8"), controlID)

	_, err = ParseControlID("  ")
	require.Error(t, err)
}

func Test_ControlID_HasAdvisoryMarker(t *testing.T) {
	assert.True(t, ControlID("SWIFT-2.4A").HasAdvisoryMarker())
	assert.False(t, ControlID("SWIFT-2.4").HasAdvisoryMarker())
	assert.False(t, ControlID("").HasAdvisoryMarker())
}

func Test_QuestionID_ControlRef(t *testing.T) {
	tests := []struct {
		name       string
		questionID QuestionID
		want       ControlID
		wantErr    bool
	}{
		{name: "framework prefixed", questionID: "SWIFT-2.8.a.1", want: "SWIFT-2.8"},
		{name: "bare numeric", questionID: "1.1.a.1", want: "1.1"},
		{name: "exactly two segments", questionID: "SWIFT-2.8", want: "SWIFT-2.8"},
		{name: "single segment", questionID: "SWIFT-2", wantErr: true},
		{name: "empty", questionID: "", wantErr: true},
		{name: "empty segment", questionID: "SWIFT-2.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.questionID.ControlRef()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseVersionLabel(t *testing.T) {
	label, err := ParseVersionLabel("v1.2")
	require.NoError(t, err)
	assert.Equal(t, VersionLabel("v1.2"), label)

	for _, raw := range []string{"", "1.2", "v1", "v1.", "v.2", "vx.y", "v-1.2", "v1.-2"} {
		_, err := ParseVersionLabel(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
	}
}

func Test_VersionLabel_Next(t *testing.T) {
	next, err := VersionLabel("v1.2").Next()
	require.NoError(t, err)
	assert.Equal(t, VersionLabel("v1.3"), next)

	// Minor advances as an integer, not a decimal fraction.
	next, err = VersionLabel("v1.9").Next()
	require.NoError(t, err)
	assert.Equal(t, VersionLabel("v1.10"), next)

	_, err = VersionLabel("garbage").Next()
	require.Error(t, err)
}

func Test_VersionLabel_Less(t *testing.T) {
	assert.True(t, VersionLabel("v1.2").Less("v1.3"))
	assert.True(t, VersionLabel("v1.9").Less("v1.10"))
	assert.True(t, VersionLabel("v1.10").Less("v2.0"))
	assert.False(t, VersionLabel("v1.3").Less("v1.3"))
	assert.False(t, VersionLabel("v2.0").Less("v1.10"))

	// Corrupted labels order before valid labels.
	assert.True(t, VersionLabel("garbage").Less("v1.0"))
	assert.False(t, VersionLabel("v1.0").Less("garbage"))
}

func Test_NewPackID(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	packID := NewPackID(now)

	assert.True(t, len(packID) > len("PACK-20260314-092653-"))
	assert.Contains(t, packID.String(), "PACK-20260314-092653-")

	// Concurrent generations within the same second stay distinct.
	assert.NotEqual(t, packID, NewPackID(now))
}

func Test_VersionID_JSONRoundTrip(t *testing.T) {
	versionID := NewVersionID()

	raw, err := versionID.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), versionID.String())

	var decoded VersionID
	require.NoError(t, decoded.UnmarshalJSON(raw))
	assert.Equal(t, versionID, decoded)
}
