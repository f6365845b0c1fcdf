package krbconf

import (
	"strings"
	"testing"
)

func TestParseManagedFile(t *testing.T) {
	text := `# This file is managed by the winkrb tool.

includedir /opt/winkrb/var/config
includedir /etc/krb5.conf.d

[logging]
 default = FILE:/var/log/krb5libs.log

[realms]
 EXAMPLE.COM = {
  kdc = kdc1.example.com
  kdc = kdc2.example.com
  admin_server = kdc1.example.com
 }
 OTHER.ORG = {
  kdc = auth.other.org
  admin_server = auth.other.org
 }

[domain_realm]
 .example.com = EXAMPLE.COM
 example.com = EXAMPLE.COM
`

	realms, includeDirs, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(includeDirs) != 2 {
		t.Errorf("Expected 2 include dirs, got %d", len(includeDirs))
	}
	if _, ok := includeDirs["/etc/krb5.conf.d"]; !ok {
		t.Error("Expected /etc/krb5.conf.d in include dirs")
	}

	example, ok := realms["EXAMPLE.COM"]
	if !ok {
		t.Fatal("Expected EXAMPLE.COM realm")
	}
	if !example.Has("kdc1.example.com") || !example.Has("kdc2.example.com") {
		t.Errorf("EXAMPLE.COM KDCs = %v, expected kdc1 and kdc2", example.List())
	}
	if example.AdminServer != "kdc1.example.com" {
		t.Errorf("EXAMPLE.COM admin server = %q, expected kdc1.example.com", example.AdminServer)
	}

	other, ok := realms["OTHER.ORG"]
	if !ok {
		t.Fatal("Expected OTHER.ORG realm")
	}
	if !other.Has("auth.other.org") || other.AdminServer != "auth.other.org" {
		t.Errorf("OTHER.ORG = %v admin %q, expected auth.other.org", other.List(), other.AdminServer)
	}
}

func TestParseIgnoresUnmanagedSections(t *testing.T) {
	text := `[appdefaults]
 something = unknown
 EXAMPLE.COM = {
  kdc = should-not-be-picked-up
 }

[realms]
 REAL.COM = {
  kdc = kdc.real.com
  admin_server = kdc.real.com
 }
`

	realms, _, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(realms) != 1 {
		t.Fatalf("Expected 1 realm, got %d", len(realms))
	}
	if _, ok := realms["REAL.COM"]; !ok {
		t.Error("Expected REAL.COM to be parsed from the realms section only")
	}
}

func TestRenderSkipsEmptyRealms(t *testing.T) {
	config := NewConfig("/tmp/krb5.conf")
	config.Realm("EMPTY.ORG")
	realm := config.Realm("FULL.ORG")
	realm.KDCs["kdc.full.org"] = struct{}{}
	realm.AdminServer = "kdc.full.org"

	text := Render(config)
	if strings.Contains(text, "EMPTY.ORG") {
		t.Error("Render should skip realms without KDCs")
	}
	if !strings.Contains(text, " FULL.ORG = {") {
		t.Error("Render should emit realms with KDCs")
	}
	if !strings.Contains(text, " .full.org = FULL.ORG\n full.org = FULL.ORG") {
		t.Error("Render should emit domain_realm pairs for the realm")
	}
}

func TestRoundTrip(t *testing.T) {
	config := NewConfig("/tmp/krb5.conf")
	config.IncludeDirs["/opt/extra"] = struct{}{}

	example := config.Realm("EXAMPLE.COM")
	example.KDCs["kdc1.example.com"] = struct{}{}
	example.KDCs["kdc2.example.com"] = struct{}{}
	example.AdminServer = "kdc2.example.com"

	other := config.Realm("OTHER.ORG")
	other.KDCs["auth.other.org"] = struct{}{}
	other.AdminServer = "auth.other.org"

	realms, includeDirs, err := Parse(strings.NewReader(Render(config)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, ok := includeDirs["/opt/extra"]; !ok {
		t.Error("Include dir lost in round trip")
	}

	for name, want := range config.Realms {
		got, ok := realms[name]
		if !ok {
			t.Fatalf("Realm %s lost in round trip", name)
		}
		if got.AdminServer != want.AdminServer {
			t.Errorf("Realm %s admin server = %q, expected %q", name, got.AdminServer, want.AdminServer)
		}
		if len(got.KDCs) != len(want.KDCs) {
			t.Errorf("Realm %s KDCs = %v, expected %v", name, got.List(), want.List())
		}
		for kdc := range want.KDCs {
			if !got.Has(kdc) {
				t.Errorf("Realm %s missing KDC %s after round trip", name, kdc)
			}
		}
	}
}
