package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

// ObjectIDGenerator generates 12-byte document identifiers rendered as
// 24-character lowercase hex strings: 4-byte unix seconds, 5-byte
// process-stable random value, 3-byte incrementing counter.
type ObjectIDGenerator struct {
	procID  [5]byte
	counter uint32
}

// NewObjectIDGenerator creates a generator with a process-stable random
// component seeded from crypto/rand (falling back to a hash of hostname+pid).
func NewObjectIDGenerator() *ObjectIDGenerator {
	g := &ObjectIDGenerator{}

	if _, err := rand.Read(g.procID[:]); err != nil {
		host, _ := os.Hostname()
		sum := sha256.Sum256([]byte(host + "/" + strconv.Itoa(os.Getpid())))
		copy(g.procID[:], sum[:5])
	}

	var b [4]byte
	if _, err := rand.Read(b[:]); err == nil {
		g.counter = uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}

	return g
}

// Generate returns a new 24-character hex object id.
func (g *ObjectIDGenerator) Generate() string {
	var raw [12]byte

	ts := uint32(time.Now().Unix())
	raw[0] = byte(ts >> 24)
	raw[1] = byte(ts >> 16)
	raw[2] = byte(ts >> 8)
	raw[3] = byte(ts)

	copy(raw[4:9], g.procID[:])

	c := atomic.AddUint32(&g.counter, 1)
	raw[9] = byte(c >> 16)
	raw[10] = byte(c >> 8)
	raw[11] = byte(c)

	var hexBuf [24]byte
	hex.Encode(hexBuf[:], raw[:])
	return string(hexBuf[:])
}

// IsObjectID reports whether s is a well-formed 24-character hex object id.
func IsObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
