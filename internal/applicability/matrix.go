// Package applicability decides, per deployment architecture, whether a
// control applies and whether it is advisory-only. The matrix is static data
// loaded once; lookups are map reads, never scans.
package applicability

import (
	id "sentra/pkg/domain"
)

// Entry is one cell of the applicability matrix: (control, architecture) →
// {applicable, advisory}. Entries are grouped under a domain label for
// display and reporting.
type Entry struct {
	ControlID    id.ControlID    `json:"control_id"`
	Name         string          `json:"name"`
	Domain       string          `json:"domain"`
	Architecture id.Architecture `json:"architecture"`
	Applicable   bool            `json:"applicable"`
	Advisory     bool            `json:"advisory"`
}

// allArchitectures is the set of known deployment topologies.
var allArchitectures = []id.Architecture{
	id.ArchitectureCloudA4,
	id.ArchitectureOnPrem,
	id.ArchitectureHybrid,
	id.ArchitectureSWIFTTerminal,
	id.ArchitecturePaymentGateway,
}

// matrixRow declares one control's display metadata plus the architectures
// it applies to; DefaultMatrix expands rows into cells.
type matrixRow struct {
	controlID id.ControlID
	name      string
	domain    string
	advisory  bool
	appliesTo []id.Architecture
}

var defaultRows = []matrixRow{
	{
		controlID: "SWIFT-1.1", name: "Restrict Internet Access", domain: "Network Security",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureHybrid, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SWIFT-1.2", name: "Segregate Critical Systems", domain: "Network Security",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureHybrid, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SWIFT-2.1", name: "Password Policy", domain: "Access Control",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureSWIFTTerminal},
	},
	{
		controlID: "SWIFT-2.7", name: "Vulnerability Scanning", domain: "Vulnerability Management",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureSWIFTTerminal},
	},
	{
		controlID: "SWIFT-2.8", name: "Multi-Factor Authentication", domain: "Access Control",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureSWIFTTerminal, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SWIFT-3.1", name: "Audit Logging", domain: "Monitoring",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureSWIFTTerminal, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SOC2-CC6.1", name: "Logical Access Controls", domain: "Access Control",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureHybrid, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SOC2-CC6.2", name: "Multi-Factor Authentication", domain: "Access Control",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SOC2-CC7.1", name: "System Monitoring", domain: "Monitoring",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem, id.ArchitectureHybrid, id.ArchitecturePaymentGateway},
	},
	{
		controlID: "SOC2-CC8.1", name: "Change Management", domain: "Change Management",
		appliesTo: []id.Architecture{id.ArchitectureCloudA4, id.ArchitectureOnPrem},
	},
}

// DefaultMatrix expands the built-in rows into explicit cells, one per known
// architecture. Architectures absent from a row get an explicit
// non-applicable cell so the fail-closed default is data, not fallthrough.
func DefaultMatrix() []Entry {
	var entries []Entry
	for _, row := range defaultRows {
		applies := make(map[id.Architecture]bool, len(row.appliesTo))
		for _, arch := range row.appliesTo {
			applies[arch] = true
		}
		for _, arch := range allArchitectures {
			entries = append(entries, Entry{
				ControlID:    row.controlID,
				Name:         row.name,
				Domain:       row.domain,
				Architecture: arch,
				Applicable:   applies[arch],
				Advisory:     row.advisory,
			})
		}
	}
	return entries
}
