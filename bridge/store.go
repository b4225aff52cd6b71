package bridge

import (
	"fmt"
	"sync"

	"github.com/tinfoilsh/verification-center/verification"
)

// Snapshot is a consistent view of the store. The document must be treated as read-only.
type Snapshot struct {
	Document *verification.Document
	// Received is false while the placeholder document is shown
	Received bool
	Loading  bool
	// Digest identifies the document, empty for the placeholder
	Digest string
	Status verification.VerificationStatus
}

// Badge collapses the snapshot into a badge. The fallback applies until the first document is received.
func (s Snapshot) Badge(fallback verification.BadgeState) verification.BadgeStatus {
	if !s.Received {
		return verification.ComputeBadgeStatus(nil, fallback)
	}
	return verification.ComputeBadgeStatus(s.Document, fallback)
}

// Store holds the current document. Documents are replaced wholesale and the last write wins.
type Store struct {
	mu       sync.RWMutex
	doc      *verification.Document
	received bool
	loading  bool
	digest   string
	status   verification.VerificationStatus
}

func NewStore() *Store {
	s := &Store{doc: verification.Placeholder()}
	s.recompute()
	return s
}

// recompute refreshes the memoized status. Callers hold the write lock.
func (s *Store) recompute() {
	s.status = verification.ComputeStatus(s.doc, s.loading)
}

// Replace installs doc as the current document and ends any outstanding request
func (s *Store) Replace(doc *verification.Document) error {
	if doc == nil {
		return ErrMissingDocument
	}
	digest, err := doc.Digest()
	if err != nil {
		return fmt.Errorf("storing document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.digest = digest
	s.received = true
	s.loading = false
	s.recompute()
	return nil
}

// BeginRequest marks a fresh document as requested
func (s *Store) BeginRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return
	}
	s.loading = true
	s.recompute()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Document: s.doc,
		Received: s.received,
		Loading:  s.loading,
		Digest:   s.digest,
		Status:   s.status,
	}
}
