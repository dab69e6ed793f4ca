package smsactivate

import "testing"

func TestParseEmailDomainType(t *testing.T) {
	tests := []struct {
		in      string
		want    EmailDomainType
		wantErr bool
	}{
		{"zones", DomainZones, false},
		{"Popular", DomainPopular, false},
		{" 1 ", DomainZones, false},
		{"2", DomainPopular, false},
		{"premium", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmailDomainType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEmailDomainType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEmailDomainType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEmailDomainType_String(t *testing.T) {
	if DomainZones.String() != "zones" || DomainPopular.String() != "popular" {
		t.Error("unexpected names for known types")
	}
	if EmailDomainType(5).String() != "EmailDomainType(5)" {
		t.Errorf("String() = %q", EmailDomainType(5).String())
	}
}

func TestNewEmailDomain(t *testing.T) {
	d := NewEmailDomain("outlook.com", DomainPopular)
	if d.Cost != -1 || d.Count != -1 {
		t.Errorf("NewEmailDomain() = %+v, want unknown cost and count", d)
	}
	if d.String() != "outlook.com" {
		t.Errorf("String() = %q", d.String())
	}
}
