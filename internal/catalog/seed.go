package catalog

import (
	"context"
	"fmt"
	"time"

	id "sentra/pkg/domain"
)

// Frameworks known at seed time.
var seedFrameworks = []Framework{
	{ID: id.FrameworkSWIFTCSP, Name: "SWIFT Customer Security Programme", Description: "Mandatory and advisory security controls for SWIFT-connected infrastructure"},
	{ID: id.FrameworkSOC2, Name: "SOC 2", Description: "Trust services criteria for service organizations"},
}

type seedControl struct {
	control       Control
	logicText     string
	questions     []string
	evidenceTypes []string
}

// seedControls is the initial control library. Each entry becomes a control
// with an active v1.0 version; later edits supersede it through the normal
// versioning path.
var seedControls = []seedControl{
	{
		control: Control{
			ID: "SWIFT-1.1", Name: "Restrict Internet Access",
			Description:    "Restrict logical access to the SWIFT environment to internet-facing entry points",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP},
		},
		logicText: "Internet access to the SWIFT environment is restricted to documented entry points behind reviewed firewall rules.",
		questions: []string{
			"Is internet access to SWIFT environment restricted?",
			"Are there documented network segmentation controls?",
			"Are firewall rules reviewed quarterly?",
		},
		evidenceTypes: []string{"network_logs", "firewall_configs", "network_diagrams"},
	},
	{
		control: Control{
			ID: "SWIFT-1.2", Name: "Segregate Critical Systems",
			Description:    "Segregate critical systems from general IT environment",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP},
		},
		logicText: "Critical SWIFT systems are isolated from the general IT environment with enforced access controls between segments.",
		questions: []string{
			"Are critical SWIFT systems segregated from general IT?",
			"Is network segmentation documented and tested?",
			"Are access controls between segments enforced?",
		},
		evidenceTypes: []string{"network_diagrams", "access_logs", "configurations"},
	},
	{
		control: Control{
			ID: "SWIFT-2.1", Name: "Password Policy",
			Description:    "Enforce strong password policy for operator accounts",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP},
		},
		logicText: "Operator accounts are governed by an enforced password policy covering complexity, rotation and history.",
		questions: []string{
			"Is password policy enforced (min 12 chars, complexity)?",
			"Are passwords changed every 90 days?",
			"Is password history enforced (last 10 passwords)?",
		},
		evidenceTypes: []string{"policy_documents", "configurations", "audit_logs"},
	},
	{
		control: Control{
			ID: "SWIFT-2.7", Name: "Vulnerability Scanning",
			Description:    "Perform vulnerability scanning of SWIFT-related infrastructure",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP},
		},
		logicText: "SWIFT-related infrastructure is scanned for vulnerabilities on a quarterly cycle with tracked remediation.",
		questions: []string{
			"Are vulnerability scans performed quarterly?",
			"Are critical vulnerabilities remediated within 30 days?",
			"Are scan results reviewed and documented?",
		},
		evidenceTypes: []string{"scan_reports", "vulnerability_logs", "remediation_tickets"},
	},
	{
		control: Control{
			ID: "SWIFT-2.8", Name: "Multi-Factor Authentication",
			Description:    "Enforce MFA for all operator accounts",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2},
		},
		logicText: "Every SWIFT operator account authenticates with a second factor; challenges are logged and monitored.",
		questions: []string{
			"Is MFA enforced for all SWIFT operator accounts?",
			"Are MFA challenges logged and monitored?",
			"Is MFA hardware token management documented?",
		},
		evidenceTypes: []string{"mfa_logs", "configurations", "policy_documents"},
	},
	{
		control: Control{
			ID: "SWIFT-3.1", Name: "Audit Logging",
			Description:    "Maintain comprehensive audit logs of SWIFT-related activities",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2},
		},
		logicText: "All SWIFT-related activity is logged to tamper-resistant storage with a minimum seven year retention.",
		questions: []string{
			"Are all SWIFT activities logged?",
			"Are logs retained for minimum 7 years?",
			"Are logs tamper-proof and immutable?",
		},
		evidenceTypes: []string{"audit_logs", "log_retention_policies", "siem_reports"},
	},
	{
		control: Control{
			ID: "SOC2-CC6.1", Name: "Logical Access Controls",
			Description:    "Implement logical access controls to restrict access to systems and data",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSOC2},
		},
		logicText: "Logical access to systems and data is restricted, reviewed quarterly, and every attempt is logged.",
		questions: []string{
			"Are logical access controls implemented?",
			"Is access reviewed quarterly?",
			"Are access attempts logged and monitored?",
		},
		evidenceTypes: []string{"access_logs", "iam_configs", "review_documents"},
	},
	{
		control: Control{
			ID: "SOC2-CC6.2", Name: "Multi-Factor Authentication",
			Description:    "Require MFA for privileged access",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSOC2},
		},
		logicText: "Privileged access requires a second authentication factor; failures are monitored.",
		questions: []string{
			"Is MFA required for privileged access?",
			"Are MFA failures monitored?",
			"Is MFA policy documented?",
		},
		evidenceTypes: []string{"mfa_logs", "policy_documents", "configurations"},
	},
	{
		control: Control{
			ID: "SOC2-CC7.1", Name: "System Monitoring",
			Description:    "Monitor system activities and detect anomalies",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSOC2},
		},
		logicText: "Systems are monitored continuously; anomalies raise alerts and monitoring logs are retained.",
		questions: []string{
			"Are systems monitored 24/7?",
			"Are anomalies detected and alerted?",
			"Are monitoring logs retained?",
		},
		evidenceTypes: []string{"monitoring_logs", "alert_reports", "siem_dashboards"},
	},
	{
		control: Control{
			ID: "SOC2-CC8.1", Name: "Change Management",
			Description:    "Manage changes to systems and processes",
			Classification: ClassificationMandatory,
			Frameworks:     []id.FrameworkID{id.FrameworkSOC2},
		},
		logicText: "System and process changes are approved before implementation, tested, and recorded in change logs.",
		questions: []string{
			"Are changes approved before implementation?",
			"Are changes tested?",
			"Are change logs maintained?",
		},
		evidenceTypes: []string{"change_requests", "deployment_logs", "approval_documents"},
	},
}

// DefaultOverlaps maps controls that satisfy the same requirement in another
// framework. Both directions are listed so lookups stay a single map read.
func DefaultOverlaps() map[id.ControlID][]id.ControlID {
	return map[id.ControlID][]id.ControlID{
		"SWIFT-2.8":  {"SOC2-CC6.2"},
		"SOC2-CC6.2": {"SWIFT-2.8"},
		"SWIFT-3.1":  {"SOC2-CC7.1"},
		"SOC2-CC7.1": {"SWIFT-3.1"},
		"SWIFT-2.1":  {"SOC2-CC6.1"},
		"SOC2-CC6.1": {"SWIFT-2.1"},
	}
}

// SeedFrameworks returns the framework records known at seed time.
func SeedFrameworks() []Framework {
	return append([]Framework{}, seedFrameworks...)
}

// Seed loads the initial control library into an empty store. Every control
// starts at v1.0 with Active=true. Seeding an already-populated store is an
// error; the version history is the source of truth after first boot.
func Seed(ctx context.Context, store Store, now time.Time) error {
	for _, sc := range seedControls {
		control := sc.control
		initial := ControlVersion{
			ID:                id.NewVersionID(),
			ControlID:         control.ID,
			Label:             id.InitialVersionLabel,
			CreatedAt:         now,
			Author:            "seed",
			ChangeDescription: "Initial control definition",
			LogicText:         sc.logicText,
			Questions:         append([]string{}, sc.questions...),
			EvidenceTypes:     append([]string{}, sc.evidenceTypes...),
			Active:            true,
		}
		if err := store.CreateControl(ctx, control, initial); err != nil {
			return fmt.Errorf("seed control %s: %w", control.ID, err)
		}
	}
	return nil
}
