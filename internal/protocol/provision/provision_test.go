package provision_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
	"sealgram/internal/protocol/provision"
)

func makePreshared(t *testing.T) string {
	t.Helper()
	raw, err := crypto.RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	return crypto.B64(raw)
}

func TestDeriveSharedKey_BothSidesAgree(t *testing.T) {
	existing, err := provision.NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	joining, err := provision.NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	preshared := makePreshared(t)

	if err := existing.Derive(joining.Ephemeral.Public.B64(), preshared); err != nil {
		t.Fatalf("existing Derive: %v", err)
	}
	if err := joining.Derive(existing.Ephemeral.Public.B64(), preshared); err != nil {
		t.Fatalf("joining Derive: %v", err)
	}
	if existing.Key != joining.Key {
		t.Fatal("devices derived different linking keys")
	}
}

func TestDeriveSharedKey_PresharedSecretMatters(t *testing.T) {
	a, _ := provision.NewSession()
	b, _ := provision.NewSession()

	if err := a.Derive(b.Ephemeral.Public.B64(), makePreshared(t)); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	one := a.Key
	if err := a.Derive(b.Ephemeral.Public.B64(), makePreshared(t)); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if one == a.Key {
		t.Fatal("different pre-shared secrets derived the same key")
	}
}

func TestDeriveSharedKey_BadInputs(t *testing.T) {
	sess, _ := provision.NewSession()
	preshared := makePreshared(t)

	if _, err := provision.DeriveSharedKey("!!!", sess.Ephemeral.Public.B64(), preshared); err == nil {
		t.Fatal("want error for invalid private key encoding")
	}
	if _, err := provision.DeriveSharedKey(sess.Ephemeral.Private.B64(), crypto.B64([]byte("short")), preshared); err == nil {
		t.Fatal("want error for truncated public key")
	}
	zero := domain.PublicKey{}
	if _, err := provision.DeriveSharedKey(sess.Ephemeral.Private.B64(), zero.B64(), preshared); err == nil {
		t.Fatal("want error for zero public key")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	var key [provision.KeySize]byte
	key[7] = 42

	payloads := []any{
		map[string]any{"id": "device-2", "keys": []any{"a", "b"}},
		[]any{float64(1), "two", true, nil},
		"bare string",
		float64(12345),
	}
	for _, payload := range payloads {
		sealed, err := provision.Seal(key, payload)
		if err != nil {
			t.Fatalf("Seal(%v): %v", payload, err)
		}
		got, err := provision.Open(key, sealed.Nonce, sealed.Ciphertext)
		if err != nil {
			t.Fatalf("Open(%v): %v", payload, err)
		}
		if !reflect.DeepEqual(got, payload) {
			t.Fatalf("round trip mismatch: got %v want %v", got, payload)
		}
	}
}

func TestSealOpen_TypedPayload(t *testing.T) {
	var key [provision.KeySize]byte
	key[0] = 9

	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	id := domain.Identity{ID: "device-2", Keys: kp}

	sealed, err := provision.Seal(key, id)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	var got domain.Identity
	if err := provision.OpenInto(key, sealed.Nonce, sealed.Ciphertext, &got); err != nil {
		t.Fatalf("OpenInto: %v", err)
	}
	if got.ID != id.ID || got.Keys != id.Keys {
		t.Fatal("identity did not survive the round trip")
	}
}

func TestOpen_Failures(t *testing.T) {
	var key, wrong [provision.KeySize]byte
	key[1], wrong[1] = 1, 2

	sealed, err := provision.Seal(key, map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := provision.Open(wrong, sealed.Nonce, sealed.Ciphertext); !errors.Is(err, domain.ErrProvisioningDecryption) {
		t.Fatalf("wrong key: got %v, want ErrProvisioningDecryption", err)
	}

	ct, _ := crypto.FromB64(sealed.Ciphertext)
	ct[0] ^= 0x01
	if _, err := provision.Open(key, sealed.Nonce, crypto.B64(ct)); !errors.Is(err, domain.ErrProvisioningDecryption) {
		t.Fatalf("corrupted ciphertext: got %v, want ErrProvisioningDecryption", err)
	}

	nonce, _ := crypto.FromB64(sealed.Nonce)
	nonce[0] ^= 0x01
	if _, err := provision.Open(key, crypto.B64(nonce), sealed.Ciphertext); !errors.Is(err, domain.ErrProvisioningDecryption) {
		t.Fatalf("corrupted nonce: got %v, want ErrProvisioningDecryption", err)
	}

	if _, err := provision.Open(key, crypto.B64([]byte("bad")), sealed.Ciphertext); err == nil {
		t.Fatal("want error for wrong-size nonce")
	}
}

func TestHKDF_CustomInfoAndLength(t *testing.T) {
	ikm := []byte("shared material")

	def, err := provision.HKDF(ikm, provision.DefaultInfo, provision.KeySize)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if len(def) != provision.KeySize {
		t.Fatalf("derived %d bytes, want %d", len(def), provision.KeySize)
	}

	v2, err := provision.HKDF(ikm, "provision-v2", provision.KeySize)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	if bytes.Equal(def, v2) {
		t.Fatal("different info labels derived the same key")
	}

	long, err := provision.HKDF(ikm, provision.DefaultInfo, 64)
	if err != nil || len(long) != 64 {
		t.Fatalf("64-byte derivation: len=%d err=%v", len(long), err)
	}
	if !bytes.Equal(long[:provision.KeySize], def) {
		t.Fatal("HKDF output is not a prefix-consistent stream")
	}
}

func TestSession_SealBeforeDerive(t *testing.T) {
	sess, err := provision.NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := sess.Seal("payload"); !errors.Is(err, domain.ErrMissingKeyMaterial) {
		t.Fatalf("got %v, want ErrMissingKeyMaterial", err)
	}
}

func TestSession_Discard(t *testing.T) {
	a, _ := provision.NewSession()
	b, _ := provision.NewSession()
	preshared := makePreshared(t)
	if err := a.Derive(b.Ephemeral.Public.B64(), preshared); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	a.Discard()
	if a.Key != [provision.KeySize]byte{} {
		t.Fatal("derived key survived Discard")
	}
	if _, err := a.Seal("x"); !errors.Is(err, domain.ErrMissingKeyMaterial) {
		t.Fatalf("got %v, want ErrMissingKeyMaterial after Discard", err)
	}
}
