// Package storage provides the opaque key-value persistence collaborator
// the domain store writes its snapshot through. Backends share one small
// contract; the store never knows which one it is talking to.
package storage

// KV is a byte-string key-value store. Get returns (nil, nil) when the key
// is absent; callers treat that as "no snapshot yet". Beyond last-write-wins
// no transactional guarantees are made.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}
