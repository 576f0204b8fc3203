package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// Draft is an opaque form snapshot: whatever the page wants to survive the
// login redirect, as a flat key-value record.
type Draft map[string]string

const (
	sealInfo     = "events-draft-seal"
	sealKeySize  = 32
	sealSeedSize = 32
	nonceSize    = 24
)

// deriveSealKey stretches the stored seed into the secretbox key.
func deriveSealKey(seed []byte) (*[sealKeySize]byte, error) {
	reader := hkdf.New(sha256.New, seed, nil, []byte(sealInfo))

	var key [sealKeySize]byte
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return nil, errors.Wrap(err, "[deriveSealKey] hkdf read")
	}
	return &key, nil
}

func newSealSeed() ([]byte, error) {
	seed := make([]byte, sealSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(err, "[newSealSeed] rand.Read")
	}
	return seed, nil
}

// sealDraft serialises and seals a snapshot. Sealing means a snapshot that
// was corrupted or tampered with in storage fails restore instead of
// silently repopulating the form.
func sealDraft(draft Draft, key *[sealKeySize]byte) (string, error) {
	plain, err := json.Marshal(draft)
	if err != nil {
		return "", errors.Wrap(err, "[sealDraft] marshal")
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrap(err, "[sealDraft] rand.Read")
	}

	sealed := secretbox.Seal(nonce[:], plain, &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func openDraft(encoded string, key *[sealKeySize]byte) (Draft, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "[openDraft] decode")
	}
	if len(raw) < nonceSize {
		return nil, errors.New("[openDraft] snapshot too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.New("[openDraft] snapshot damaged")
	}

	var draft Draft
	if err := json.Unmarshal(plain, &draft); err != nil {
		return nil, errors.Wrap(err, "[openDraft] unmarshal")
	}
	return draft, nil
}
