// Package domain defines the core cryptographic domain models for the journal's
// client-side envelope encryption.
//
// The key hierarchy has two tiers: a MasterKey derived from the user's credentials
// wraps one DataKey per record, and each DataKey encrypts the fields of its record.
// Plaintext keys live only in memory and are zeroed as soon as an operation finishes.
package domain

// KeySize is the size in bytes of every master key and data key (256 bits).
const KeySize = 32

// Zero overwrites b with zeros. Used for keys and passwords once they are no longer needed.
func Zero(b []byte) {
	clear(b)
}

// MasterKey is the top-level key derived from (email, password).
//
// It is never persisted. The session owns the only long-lived reference and
// zeroes it on lock.
type MasterKey struct {
	Key []byte
}

// Destroy overwrites the key material with zeros.
func (m *MasterKey) Destroy() {
	if m == nil {
		return
	}
	Zero(m.Key)
	m.Key = nil
}

// DataKey is a per-record symmetric key. A fresh one is generated for every
// encrypted record and never shared across records.
type DataKey struct {
	Key       []byte
	Algorithm Algorithm
}

// Destroy overwrites the key material with zeros.
func (d *DataKey) Destroy() {
	if d == nil {
		return
	}
	Zero(d.Key)
	d.Key = nil
}

// EncryptedBlob is the storage unit of any encrypted field. Both members are
// standard base64 text. An empty blob represents an absent optional field.
type EncryptedBlob struct {
	Ciphertext string
	IV         string
}

// IsEmpty reports whether the blob carries no ciphertext.
func (b EncryptedBlob) IsEmpty() bool {
	return b.Ciphertext == ""
}

// WrappedKey is a DataKey encrypted under the MasterKey. Algorithm records the
// cipher used both for wrapping and for the record fields the key protects.
type WrappedKey struct {
	EncryptedBlob
	Algorithm Algorithm
}
