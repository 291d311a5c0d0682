package session

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/cipher"
)

// ActiveKeyID is the row id of the key used to sign new tokens. Older keys
// stay in the table so outstanding tokens keep verifying after a rotation.
const ActiveKeyID = "session:active"

// ErrNoSigningKey is returned when the keystore has no active key.
var ErrNoSigningKey = errors.New("no session signing key; run 'boardctl auth-key generate'")

// StoredKey is a token-signing key row. The PEM is sealed with the server
// data key before it reaches the database, bound to the key fingerprint so
// the blob survives the row being renamed at rotation.
type StoredKey struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Fingerprint string    `gorm:"column:fingerprint"`
	Key         []byte    `gorm:"column:key"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (StoredKey) TableName() string {
	return "signing_keys"
}

// Key is a decrypted signing key ready for use.
type Key struct {
	ID          string
	Fingerprint string
	Private     *rsa.PrivateKey
}

// KeyStore loads and caches token-signing keys.
type KeyStore struct {
	db     *gorm.DB
	cipher cipher.Symmetric

	mu                sync.RWMutex
	keysByID          map[string]*Key
	keysByFingerprint map[string]*Key
}

// NewKeyStore creates a keystore over the given database connection.
func NewKeyStore(db *gorm.DB, c cipher.Symmetric) *KeyStore {
	return &KeyStore{
		db:                db,
		cipher:            c,
		keysByID:          map[string]*Key{},
		keysByFingerprint: map[string]*Key{},
	}
}

// NewStaticKeyStore wraps a single in-memory key, no database behind
// it. Used by tests and by one-shot CLI commands that already hold the
// key material.
func NewStaticKeyStore(private *rsa.PrivateKey) *KeyStore {
	key := &Key{
		ID:          ActiveKeyID,
		Fingerprint: Fingerprint(&private.PublicKey),
		Private:     private,
	}
	return &KeyStore{
		keysByID:          map[string]*Key{key.ID: key},
		keysByFingerprint: map[string]*Key{key.Fingerprint: key},
	}
}

// Active returns the key used to sign new tokens.
func (k *KeyStore) Active() (*Key, error) {
	key, err := k.fetchKey(&StoredKey{ID: ActiveKeyID})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSigningKey
	}
	return key, err
}

// ByFingerprint returns the key identified by a token's kid header.
func (k *KeyStore) ByFingerprint(fingerprint string) (*Key, error) {
	return k.fetchKey(&StoredKey{Fingerprint: fingerprint})
}

func (k *KeyStore) fetchKey(query *StoredKey) (*Key, error) {
	k.mu.RLock()
	if key, ok := k.keysByFingerprint[query.Fingerprint]; ok {
		k.mu.RUnlock()
		return key, nil
	}
	if key, ok := k.keysByID[query.ID]; ok {
		k.mu.RUnlock()
		return key, nil
	}
	k.mu.RUnlock()

	if k.db == nil {
		return nil, gorm.ErrRecordNotFound
	}

	var stored StoredKey
	if err := k.db.Where(query).First(&stored).Error; err != nil {
		return nil, err
	}

	pemBytes, err := k.cipher.Open([]byte(stored.Fingerprint), stored.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal signing key %s: %w", stored.ID, err)
	}

	private, err := parsePrivateKeyPEM(pemBytes)
	if err != nil {
		return nil, err
	}

	if Fingerprint(&private.PublicKey) != stored.Fingerprint {
		return nil, errors.New("signing key has bad stored fingerprint")
	}

	key := &Key{
		ID:          stored.ID,
		Fingerprint: stored.Fingerprint,
		Private:     private,
	}

	k.mu.Lock()
	k.keysByID[stored.ID] = key
	k.keysByFingerprint[stored.Fingerprint] = key
	k.mu.Unlock()

	return key, nil
}

// Rotate generates a new RSA signing key and makes it active. The previous
// active key (if any) is preserved under a timestamped id.
func (k *KeyStore) Rotate() (*Key, error) {
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(private),
	})

	fingerprint := Fingerprint(&private.PublicKey)

	var retiredID string
	err = k.db.Transaction(func(tx *gorm.DB) error {
		var current StoredKey
		err := tx.Where(&StoredKey{ID: ActiveKeyID}).First(&current).Error
		switch {
		case err == nil:
			retired := current
			retired.ID = "session:retired:" + current.CreatedAt.UTC().Format("20060102T150405Z")
			if err := tx.Create(&retired).Error; err != nil {
				return err
			}
			if err := tx.Delete(&StoredKey{}, "id = ?", ActiveKeyID).Error; err != nil {
				return err
			}
			retiredID = retired.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First key, nothing to retire.
		default:
			return err
		}

		sealed, err := k.cipher.Seal([]byte(fingerprint), pemBytes)
		if err != nil {
			return err
		}

		return tx.Create(&StoredKey{
			ID:          ActiveKeyID,
			Fingerprint: fingerprint,
			Key:         sealed,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	key := &Key{ID: ActiveKeyID, Fingerprint: fingerprint, Private: private}

	// The retired key stays cached under its new id and its fingerprint,
	// so tokens signed before the rotation keep verifying.
	k.mu.Lock()
	if old, ok := k.keysByID[ActiveKeyID]; ok && retiredID != "" {
		old.ID = retiredID
		k.keysByID[retiredID] = old
	}
	k.keysByID[ActiveKeyID] = key
	k.keysByFingerprint[fingerprint] = key
	k.mu.Unlock()

	return key, nil
}

// Fingerprint returns the hex SHA-256 of the public key in PKIX DER form.
func Fingerprint(public *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(public)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}

func parsePrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("signing key is not valid PEM")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("signing key is not RSA")
	}
	return key, nil
}
