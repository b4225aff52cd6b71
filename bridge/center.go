package bridge

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tinfoilsh/verification-center/config"
)

// Center is the verification center's side of the host conversation
type Center struct {
	store  *Store
	config *config.Config
	logger *log.Logger

	mu   sync.Mutex
	open bool
}

// NewCenter returns an open center. A nil config allows every verifier version
// and a nil logger uses the default logger.
func NewCenter(store *Store, cfg *config.Config, logger *log.Logger) *Center {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Center{
		store:  store,
		config: cfg,
		logger: logger,
		open:   true,
	}
}

func (c *Center) Store() *Store {
	return c.store
}

func (c *Center) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Center) setOpen(open bool) {
	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
}

// Start announces the center to the host
func (c *Center) Start() Message {
	c.logger.Debug("Verification center ready")
	return Message{Type: KindReady}
}

// Handle applies an incoming message and returns the messages to send back to the host
func (c *Center) Handle(msg Message) ([]Message, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}

	switch msg.Type {
	case KindDocument:
		if msg.VerifierVersion != "" && !c.config.IsValidVersion(msg.VerifierVersion) {
			c.logger.With("version", msg.VerifierVersion, "allowed", c.config.Allowed).Warn("Rejecting document")
			return nil, fmt.Errorf("%w: %s", ErrVersionNotAllowed, msg.VerifierVersion)
		}
		if err := c.store.Replace(msg.Document); err != nil {
			return nil, err
		}
		snap := c.store.Snapshot()
		c.logger.With("digest", snap.Digest, "status", snap.Status.SummaryStatus).Info("Received verification document")
		return nil, nil
	case KindOpen:
		c.setOpen(true)
		return nil, nil
	case KindClose:
		c.setOpen(false)
		return []Message{{Type: KindClosed}}, nil
	case KindRequestDocument:
		c.store.BeginRequest()
		c.logger.Debug("Requesting verification document")
		return []Message{{Type: KindRequestDocument}}, nil
	default:
		// READY and CLOSED only travel from the center to the host
		c.logger.With("type", msg.Type).Debug("Ignoring outbound message type")
		return nil, nil
	}
}
