package assurance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"sentra/internal/status"
	id "sentra/pkg/domain"
)

// hashedContent is the canonical form fed into the content hash. Map
// iteration order is not deterministic, so the frozen versions are flattened
// into a sorted slice before marshalling.
type hashedContent struct {
	Scope     Scope             `json:"scope"`
	TimeRange TimeRange         `json:"time_range"`
	Versions  []hashedVersion   `json:"versions"`
	Snapshots []status.Snapshot `json:"snapshots"`
}

type hashedVersion struct {
	ControlID id.ControlID    `json:"control_id"`
	Label     id.VersionLabel `json:"label"`
}

// ContentHash returns the hex SHA-256 of the pack's frozen content. The id
// and creation timestamp are excluded so two packs generated from identical
// inputs hash identically.
func ContentHash(scope Scope, timeRange TimeRange, versions map[id.ControlID]id.VersionLabel, snapshots []status.Snapshot) string {
	flat := make([]hashedVersion, 0, len(versions))
	for controlID, label := range versions {
		flat = append(flat, hashedVersion{ControlID: controlID, Label: label})
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].ControlID < flat[j].ControlID })

	ordered := make([]status.Snapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ControlID < ordered[j].ControlID })

	canonical := hashedContent{
		Scope: Scope{
			Kind:       scope.Kind,
			Framework:  scope.Framework,
			ControlIDs: sortedControlIDs(scope.ControlIDs),
		},
		TimeRange: TimeRange{
			Start: timeRange.Start.UTC().Truncate(time.Second),
			End:   timeRange.End.UTC().Truncate(time.Second),
		},
		Versions:  flat,
		Snapshots: ordered,
	}

	raw, err := json.Marshal(canonical)
	if err != nil {
		// All field types marshal without error; this branch is unreachable
		// but the hash must still be stable if it ever fires.
		raw = []byte(err.Error())
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func sortedControlIDs(ids []id.ControlID) []id.ControlID {
	out := make([]id.ControlID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
