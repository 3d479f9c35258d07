// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

package email

import "testing"

// TestTLSPolicy_String tests the TLSPolicy.String method
func TestTLSPolicy_String(t *testing.T) {
	tests := []struct {
		name  string
		value TLSPolicy
		want  string
	}{
		{"TLSPolicy is Mandatory", TLSMandatory, "TLSMandatory"},
		{"TLSPolicy is Opportunistic", TLSOpportunistic, "TLSOpportunistic"},
		{"TLSPolicy is NoTLS", NoTLS, "NoTLS"},
		{"TLSPolicy is Unknown", 3, "UnknownPolicy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.String() != tt.want {
				t.Errorf("TLSPolicy.String() failed. Expected: %s, got: %s", tt.want, tt.value.String())
			}
		})
	}
}

// TestSession_TLSPolicy tests that the Email STARTTLS settings map to a TLSPolicy
func TestSession_TLSPolicy(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*Email)
		want      TLSPolicy
	}{
		{"default", func(*Email) {}, NoTLS},
		{"STARTTLS enabled", func(e *Email) { e.SetStartTLSEnabled(true) }, TLSOpportunistic},
		{"STARTTLS required", func(e *Email) { e.SetStartTLSRequired(true) }, TLSMandatory},
		{"STARTTLS required and disabled again", func(e *Email) {
			e.SetStartTLSRequired(true)
			e.SetStartTLSRequired(false)
		}, TLSOpportunistic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEmail(t, WithHostName(testHostName))
			tt.configure(e)
			s, err := e.GetMailSession()
			if err != nil {
				t.Fatalf("GetMailSession() failed: %s", err)
			}
			if s.TLSPolicy() != tt.want {
				t.Errorf("TLSPolicy() failed. Expected: %s, got: %s", tt.want, s.TLSPolicy())
			}
		})
	}
}
