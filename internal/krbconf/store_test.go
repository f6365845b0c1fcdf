package krbconf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, validator IncludeValidator) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "krb5.conf")
	store, err := Open(path, validator)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store
}

func TestMergeKDCsDeltaAlgebra(t *testing.T) {
	store := newTestStore(t, nil)

	// Realm R with KDCs {A,B} and admin server A.
	if _, err := store.MergeKDCs("R", ParseDelta("*A,B")); err != nil {
		t.Fatalf("seed merge failed: %v", err)
	}

	changed, err := store.MergeKDCs("R", ParseDelta("+C,-B"))
	if err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}
	if !changed {
		t.Error("Expected +C,-B to change the realm")
	}

	realm := store.Snapshot().Realms["R"]
	if got := strings.Join(realm.List(), ","); got != "A,C" {
		t.Errorf("KDCs = %s, expected A,C", got)
	}
	if realm.AdminServer != "A" {
		t.Errorf("Admin server = %q, expected unchanged A", realm.AdminServer)
	}
}

func TestMergeKDCsStarOnEmptyRealm(t *testing.T) {
	store := newTestStore(t, nil)

	if _, err := store.MergeKDCs("FRESH", ParseDelta("*D,E")); err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}

	realm := store.Snapshot().Realms["FRESH"]
	if got := strings.Join(realm.List(), ","); got != "D,E" {
		t.Errorf("KDCs = %s, expected D,E", got)
	}
	if realm.AdminServer != "D" {
		t.Errorf("Admin server = %q, expected D", realm.AdminServer)
	}
}

func TestMergeKDCsFirstTokenBecomesAdmin(t *testing.T) {
	store := newTestStore(t, nil)

	// No '*' token and no current admin server: first token in delta order wins.
	if _, err := store.MergeKDCs("NEW", ParseDelta("kdc2,kdc1")); err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}

	realm := store.Snapshot().Realms["NEW"]
	if realm.AdminServer != "kdc2" {
		t.Errorf("Admin server = %q, expected first delta token kdc2", realm.AdminServer)
	}
}

func TestMergeKDCsAdminReassignedWhenRemoved(t *testing.T) {
	store := newTestStore(t, nil)

	if _, err := store.MergeKDCs("R", ParseDelta("*A,B")); err != nil {
		t.Fatalf("seed merge failed: %v", err)
	}
	if _, err := store.MergeKDCs("R", ParseDelta("-A")); err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}

	realm := store.Snapshot().Realms["R"]
	if realm.Empty() {
		t.Fatal("Realm should still have KDC B")
	}
	if !realm.Has(realm.AdminServer) {
		t.Errorf("Admin server %q is not a member of %v", realm.AdminServer, realm.List())
	}
}

func TestMergeKDCsInvariantAfterEveryMerge(t *testing.T) {
	store := newTestStore(t, nil)

	deltas := []string{"*A,B,C", "-A", "+D,-B", "-C,-D"}
	for _, raw := range deltas {
		if _, err := store.MergeKDCs("INV", ParseDelta(raw)); err != nil {
			t.Fatalf("MergeKDCs(%q) failed: %v", raw, err)
		}
		realm := store.Snapshot().Realms["INV"]
		if !realm.Empty() && !realm.Has(realm.AdminServer) {
			t.Errorf("After %q: admin server %q not in %v", raw, realm.AdminServer, realm.List())
		}
	}
}

func TestMergeKDCsIdempotent(t *testing.T) {
	store := newTestStore(t, nil)
	delta := ParseDelta("*kdc1.example.com,kdc2.example.com")

	changed, err := store.MergeKDCs("EXAMPLE.COM", delta)
	if err != nil {
		t.Fatalf("first merge failed: %v", err)
	}
	if !changed {
		t.Fatal("Expected first merge to report a change")
	}

	// Scribble on the file: a second identical merge must not rewrite it.
	sentinel := "# sentinel: rewritten files lose this line\n"
	content, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if err := os.WriteFile(store.Path(), append(content, sentinel...), 0644); err != nil {
		t.Fatalf("writing sentinel: %v", err)
	}

	changed, err = store.MergeKDCs("EXAMPLE.COM", delta)
	if err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if changed {
		t.Error("Expected second identical merge to be a no-op")
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(after), sentinel) {
		t.Error("File was rewritten by an idempotent merge")
	}
}

func TestMergeKDCsBlankDeltaIsNoOp(t *testing.T) {
	store := newTestStore(t, nil)

	changed, err := store.MergeKDCs("ANY", ParseDelta("   "))
	if err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}
	if changed {
		t.Error("Expected blank delta to be a no-op")
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("Blank delta should not create the configuration file")
	}
}

func TestMergeKDCsUppercasesRealmName(t *testing.T) {
	store := newTestStore(t, nil)

	if _, err := store.MergeKDCs("example.com", ParseDelta("kdc1")); err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}
	if _, ok := store.Snapshot().Realms["EXAMPLE.COM"]; !ok {
		t.Error("Expected realm name to be stored upper-cased")
	}
}

func TestMergePersistsToFile(t *testing.T) {
	store := newTestStore(t, nil)

	if _, err := store.MergeKDCs("EXAMPLE.COM", ParseDelta("*kdc1,kdc2")); err != nil {
		t.Fatalf("MergeKDCs failed: %v", err)
	}

	reopened, err := Open(store.Path(), nil)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	realm, ok := reopened.Snapshot().Realms["EXAMPLE.COM"]
	if !ok {
		t.Fatal("Expected EXAMPLE.COM to survive a reload")
	}
	if !realm.Has("kdc1") || !realm.Has("kdc2") || realm.AdminServer != "kdc1" {
		t.Errorf("Reloaded realm = %v admin %q", realm.List(), realm.AdminServer)
	}
}

// stubValidator implements IncludeValidator for store tests.
type stubValidator struct {
	fragment string
	calls    int
}

func (v *stubValidator) Validate(ctx context.Context, confPath string) (string, error) {
	v.calls++
	return v.fragment, nil
}

func TestRegisterIncludeDirKept(t *testing.T) {
	validator := &stubValidator{}
	store := newTestStore(t, validator)

	kept, err := store.RegisterIncludeDir(context.Background(), "/opt/extra.d")
	if err != nil {
		t.Fatalf("RegisterIncludeDir failed: %v", err)
	}
	if !kept {
		t.Error("Expected directory to be kept when validation passes")
	}
	if validator.calls != 1 {
		t.Errorf("Expected 1 validation run, got %d", validator.calls)
	}

	content, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(content), "includedir /opt/extra.d") {
		t.Error("Expected includedir directive in the file")
	}
}

func TestRegisterIncludeDirRejected(t *testing.T) {
	validator := &stubValidator{
		fragment: "Included profile file could not be read while initializing krb5",
	}
	store := newTestStore(t, validator)

	kept, err := store.RegisterIncludeDir(context.Background(), "/opt/broken.d")
	if err != nil {
		t.Fatalf("RegisterIncludeDir failed: %v", err)
	}
	if kept {
		t.Error("Expected directory to be rejected")
	}

	content, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if strings.Contains(string(content), "/opt/broken.d") {
		t.Error("Rejected directory must be absent from the rewritten file")
	}
}

func TestRegisterIncludeDirAlreadyPresent(t *testing.T) {
	validator := &stubValidator{}
	store := newTestStore(t, validator)

	if _, err := store.RegisterIncludeDir(context.Background(), "/opt/extra.d"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	kept, err := store.RegisterIncludeDir(context.Background(), "/opt/extra.d")
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if !kept {
		t.Error("Expected already-present directory to report kept")
	}
	if validator.calls != 1 {
		t.Errorf("Expected no second validation run, got %d calls", validator.calls)
	}
}

func TestOpenExportsKrb5Config(t *testing.T) {
	t.Setenv(EnvKrb5Config, "")
	path := filepath.Join(t.TempDir(), "krb5.conf")
	if _, err := Open(path, nil); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := os.Getenv(EnvKrb5Config); got != path {
		t.Errorf("KRB5_CONFIG = %q, expected %q", got, path)
	}
}

func TestOpenEnsuresOverrideDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "krb5.conf")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	override := filepath.Join(dir, "config")
	if info, err := os.Stat(override); err != nil || !info.IsDir() {
		t.Errorf("Expected override directory %s to exist", override)
	}
	if _, ok := store.Snapshot().IncludeDirs[override]; !ok {
		t.Error("Expected override directory to be registered as an include dir")
	}
}
